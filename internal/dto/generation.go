package dto

// GenerateRequest.Prompt is nil when the body has no prompt field.
type GenerateRequest struct {
	Prompt *string `json:"prompt"`
}

// GenerationOutcome is the result of one "Generate Response" action. Exactly
// one of Text and Error is meaningful.
type GenerationOutcome struct {
	Prompt string `json:"prompt"`
	Text   string `json:"text,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (g GenerationOutcome) Failed() bool { return g.Error != "" }
