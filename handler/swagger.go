package handler

import (
	_ "embed"
	"net/http"
)

//go:embed swagger.json
var swaggerSpec []byte

func (h *Handler) handleSwaggerFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, swaggerSpec, nil)
	}
}
