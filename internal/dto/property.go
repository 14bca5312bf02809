package dto

import (
	"bytes"
	"encoding/json"
)

// PropertyPrice holds a listing price as the feed sent it. The feed mixes
// numbers and preformatted strings, so both are kept verbatim.
type PropertyPrice string

func (p *PropertyPrice) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PropertyPrice(s)
	default:
		*p = PropertyPrice(b)
	}
	return nil
}

func (p PropertyPrice) String() string { return string(p) }

type PropertyRecord struct {
	Name     string        `json:"name"`
	Price    PropertyPrice `json:"price"`
	Location string        `json:"location"`
}
