package handlers

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/internal/middleware"
	"github.com/GregMSThompson/realestate-assistant/internal/view"
	"github.com/GregMSThompson/realestate-assistant/pkg/logger"
)

type pageHandlers struct {
	PresenterSvc PresenterService
}

func NewPageHandlers(deps *Deps) *pageHandlers {
	return &pageHandlers{PresenterSvc: deps.PresenterSvc}
}

// Show runs a render cycle from query parameters. It never generates text.
func (h *pageHandlers) Show(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.render(w, r, dto.RenderRequest{
		SessionID: middleware.SessionID(r.Context()),
		Location:  q.Get("location"),
		Prompt:    formValue(q, "prompt"),
	})
}

// Submit handles the form. Text is generated only when the generate button
// was pressed.
func (h *pageHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.render(w, r, dto.RenderRequest{
		SessionID: middleware.SessionID(r.Context()),
		Location:  r.PostForm.Get("location"),
		Prompt:    formValue(r.PostForm, "prompt"),
		Generate:  r.PostForm.Get("action") == view.GenerateAction,
	})
}

// formValue returns nil when key is absent so the default applies.
func formValue(v url.Values, key string) *string {
	if !v.Has(key) {
		return nil
	}
	s := v.Get(key)
	return &s
}

func (h *pageHandlers) render(w http.ResponseWriter, r *http.Request, req dto.RenderRequest) {
	page := h.PresenterSvc.Render(r.Context(), req)

	var buf bytes.Buffer
	if err := view.RenderPage(&buf, page); err != nil {
		logger.FromContext(r.Context()).Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
