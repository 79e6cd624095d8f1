package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/shelfwise/data/dto"
	"github.com/emzola/shelfwise/internal/validator"
	"github.com/emzola/shelfwise/service"
)

// Trending godoc
// @Summary List trending books
// @Description This endpoint ranks books published in the last days days by rating, review count and recency
// @Tags discovery
// @Produce json
// @Param days query int false "Publication window in days (1 to 365, default 7)"
// @Param limit query int false "Number of books to return (1 to 100, default 10)"
// @Success 200 {object} data.Trending
// @Failure 422
// @Failure 500
// @Router /v1/trending [get]
func (h *Handler) trendingHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsTrending
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Days = h.readInt(qs, "days", 7, v)
	qsInput.Limit = h.readInt(qs, "limit", 10, v)
	if !v.Valid() {
		h.failedValidationResponse(w, r, &service.ValidationError{Errors: v.Errors})
		return
	}
	payload, err := h.service.Trending(r.Context(), qsInput.Days, qsInput.Limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	h.writeJSON(w, http.StatusOK, payload, nil)
}

// ListCategories godoc
// @Summary List categories and genres
// @Description This endpoint lists the categories of published books and how many books carry each genre
// @Tags discovery
// @Produce json
// @Success 200 {object} data.Categories
// @Failure 500
// @Router /v1/categories [get]
func (h *Handler) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.Categories(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, payload, nil)
}
