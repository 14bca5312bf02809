package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/GregMSThompson/realestate-assistant/internal/errs"
	"github.com/GregMSThompson/realestate-assistant/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// HandleError maps request errors to HTTP. Upstream and storage failures never
// get here: they are rendered inline by the presenter.
func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var validation *errs.ValidationError
	switch {
	case errors.As(err, &validation):
		log.Warn("validation failed", "error", validation.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", validation.Message)

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
