package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/shelfwise/data/dto"
	"github.com/emzola/shelfwise/internal/validator"
	"github.com/emzola/shelfwise/service"
)

const (
	defaultFeedPage  = 1
	defaultFeedLimit = 20
)

// PersonalFeed godoc
// @Summary Show the personal activity feed
// @Description This endpoint lists the activities of the users the user follows, newest first
// @Tags feed
// @Produce json
// @Param token header string true "Bearer token"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param limit query int false "Query string param for pagination (max 100)"
// @Success 200 {object} data.Feed
// @Failure 422
// @Failure 500
// @Router /v1/feed [get]
func (h *Handler) personalFeedHandler(w http.ResponseWriter, r *http.Request) {
	qsInput, ok := h.readFeedQuery(w, r)
	if !ok {
		return
	}
	user := h.contextGetUser(r)
	feed, err := h.service.PersonalFeed(r.Context(), user.ID, qsInput.Filters.Page, qsInput.Filters.PageSize)
	if err != nil {
		h.feedErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, feed, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// GlobalFeed godoc
// @Summary Show the global activity feed
// @Description This endpoint lists every activity, newest first
// @Tags feed
// @Produce json
// @Param page query int false "Query string param for pagination (min 1)"
// @Param limit query int false "Query string param for pagination (max 100)"
// @Success 200 {object} data.Feed
// @Failure 422
// @Failure 500
// @Router /v1/feed/global [get]
func (h *Handler) globalFeedHandler(w http.ResponseWriter, r *http.Request) {
	qsInput, ok := h.readFeedQuery(w, r)
	if !ok {
		return
	}
	feed, err := h.service.GlobalFeed(r.Context(), qsInput.Filters.Page, qsInput.Filters.PageSize)
	if err != nil {
		h.feedErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, feed, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) readFeedQuery(w http.ResponseWriter, r *http.Request) (dto.QsFeed, bool) {
	var qsInput dto.QsFeed
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Filters.Page = h.readInt(qs, "page", defaultFeedPage, v)
	qsInput.Filters.PageSize = h.readInt(qs, "limit", defaultFeedLimit, v)
	if !v.Valid() {
		h.failedValidationResponse(w, r, &service.ValidationError{Errors: v.Errors})
		return qsInput, false
	}
	return qsInput, true
}

func (h *Handler) feedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrFailedValidation):
		h.failedValidationResponse(w, r, err)
	default:
		h.serverErrorResponse(w, r, err)
	}
}
