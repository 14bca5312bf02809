package response

import (
	"net/http"

	"github.com/go-chi/render"
)

type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, SuccessEnvelope{
		Success: true,
		Data:    data,
	})
}
