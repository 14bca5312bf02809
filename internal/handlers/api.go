package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/internal/errs"
	"github.com/GregMSThompson/realestate-assistant/internal/middleware"
	"github.com/GregMSThompson/realestate-assistant/internal/response"
	"github.com/GregMSThompson/realestate-assistant/pkg/helpers"
)

type apiHandlers struct {
	ResponseHandler response.ResponseHandler
	PresenterSvc    PresenterService
	GenerationSvc   GenerationService
}

func NewAPIHandlers(deps *Deps) *apiHandlers {
	return &apiHandlers{
		ResponseHandler: deps.ResponseHandler,
		PresenterSvc:    deps.PresenterSvc,
		GenerationSvc:   deps.GenerationSvc,
	}
}

func (h *apiHandlers) APIRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/render", h.Render)
	r.Post("/generate", h.Generate)
	return r
}

func (h *apiHandlers) Render(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := h.PresenterSvc.Render(r.Context(), dto.RenderRequest{
		SessionID: middleware.SessionID(r.Context()),
		Location:  q.Get("location"),
		Prompt:    formValue(q, "prompt"),
	})
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, page)
}

// Generate answers 200 even when generation fails; the failure is in the
// outcome's error field.
func (h *apiHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var body dto.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	prompt := helpers.ValueOr(body.Prompt, h.PresenterSvc.DefaultPrompt())
	outcome := h.GenerationSvc.Generate(r.Context(), prompt)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, outcome)
}
