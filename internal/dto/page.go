package dto

const (
	AIResponseHeader = "AI Response:"
	RecordSeparator  = "---"
)

// StatusLine is one independently rendered lookup: either the success text or
// its fallback message.
type StatusLine struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type PropertySection struct {
	Count   int              `json:"count"`
	Header  string           `json:"header"`
	Records []PropertyRecord `json:"records"`
}

// Page is the output of one render cycle. Weather and AirQuality are nil when
// no location was entered; Generation is nil unless the action fired (or a
// stored outcome was restored for the session).
type Page struct {
	Location   string             `json:"location"`
	Prompt     string             `json:"prompt"`
	Weather    *StatusLine        `json:"weather,omitempty"`
	AirQuality *StatusLine        `json:"airQuality,omitempty"`
	Properties PropertySection    `json:"properties"`
	Generation *GenerationOutcome `json:"generation,omitempty"`
}

// Lines flattens the page into the text lines a user sees, in render order.
func (p Page) Lines() []string {
	var lines []string
	if p.Weather != nil {
		lines = append(lines, p.Weather.Message)
	}
	if p.AirQuality != nil {
		lines = append(lines, p.AirQuality.Message)
	}

	lines = append(lines, p.Properties.Header)
	for _, rec := range p.Properties.Records {
		lines = append(lines, rec.Lines()...)
	}

	if p.Generation != nil {
		if p.Generation.Failed() {
			lines = append(lines, "Error: "+p.Generation.Error)
		} else {
			lines = append(lines, AIResponseHeader, p.Generation.Text)
		}
	}
	return lines
}

// Lines renders one property block including its trailing separator.
func (r PropertyRecord) Lines() []string {
	return []string{
		"Property Name: " + r.Name,
		"Price: " + r.Price.String(),
		"Location: " + r.Location,
		RecordSeparator,
	}
}

// RenderRequest is the user input for one render cycle. Location is used
// verbatim. Prompt is nil when the request carried no prompt field, which
// selects the default prompt; an empty but present prompt is kept. Generate is
// true only when the user pressed the generate action.
type RenderRequest struct {
	SessionID string
	Location  string
	Prompt    *string
	Generate  bool
}
