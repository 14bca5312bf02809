package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/internal/errs"
	"github.com/GregMSThompson/realestate-assistant/internal/metrics"
	"github.com/GregMSThompson/realestate-assistant/pkg/logger"
)

type vertexClient interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type generationService struct {
	vertex          vertexClient
	temperature     *float32
	maxOutputTokens *int32
}

type GenerationOption func(*generationService)

// WithSampling overrides the model's temperature and output limit. Nil keeps
// the model default.
func WithSampling(temperature *float32, maxOutputTokens *int32) GenerationOption {
	return func(s *generationService) {
		s.temperature = temperature
		s.maxOutputTokens = maxOutputTokens
	}
}

func NewGenerationService(vertex vertexClient, opts ...GenerationOption) *generationService {
	s := &generationService{vertex: vertex}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate sends prompt to the model. It never fails: any error, including a
// panic inside the client, is reported in the outcome's Error field.
func (s *generationService) Generate(ctx context.Context, prompt string) (out dto.GenerationOutcome) {
	log := logger.FromContext(ctx)
	out.Prompt = prompt

	defer func() {
		if r := recover(); r != nil {
			out.Text = ""
			out.Error = failureMessage(fmt.Sprint(r), r)
			log.Error("text generation panicked", "panic", r)
			metrics.Generations.WithLabelValues("error").Inc()
		}
	}()

	text, err := s.generate(ctx, prompt)
	if err != nil {
		log.Warn("text generation failed", "error", err)
		metrics.Generations.WithLabelValues("error").Inc()
		out.Error = failureMessage(err.Error(), err)
		return out
	}

	log.Info("text generation completed", "prompt_chars", len(prompt), "response_chars", len(text))
	metrics.Generations.WithLabelValues("ok").Inc()
	out.Text = text
	return out
}

// failureMessage keeps a failed outcome from ever carrying an empty Error.
func failureMessage(msg string, cause any) string {
	if msg != "" {
		return msg
	}
	return fmt.Sprintf("text generation failed (%T)", cause)
}

func (s *generationService) generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errs.NewValidationError("prompt is required")
	}
	if s.vertex == nil {
		return "", fmt.Errorf("text generation is not configured")
	}

	resp, err := s.vertex.GenerateContent(ctx, dto.VertexGenerateRequest{
		UserMessage:     prompt,
		Temperature:     s.temperature,
		MaxOutputTokens: s.maxOutputTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
