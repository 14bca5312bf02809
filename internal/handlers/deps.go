package handlers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/internal/response"
)

type PresenterService interface {
	Render(ctx context.Context, req dto.RenderRequest) dto.Page
	DefaultPrompt() string
}

type GenerationService interface {
	Generate(ctx context.Context, prompt string) dto.GenerationOutcome
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	PresenterSvc    PresenterService
	GenerationSvc   GenerationService
}
