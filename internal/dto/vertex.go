package dto

type VertexGenerateRequest struct {
	Model           string
	UserMessage     string
	Temperature     *float32
	MaxOutputTokens *int32
}

type VertexGenerateResponse struct {
	Text string
	Raw  any
}
