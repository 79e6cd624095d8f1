package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/data/dto"
	"github.com/emzola/shelfwise/internal/validator"
	"github.com/emzola/shelfwise/service"
)

// UpsertReview godoc
// @Summary Create or replace a book review
// @Description This endpoint creates the user's review of a published book, or replaces it if one exists
// @Tags reviews
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param bookId path int true "ID of book to review"
// @Param body body dto.UpsertReviewRequestBody true "JSON payload required to review a book"
// @Success 200 {object} data.ReviewResult
// @Success 201 {object} data.ReviewResult
// @Failure 400
// @Failure 403
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /v1/books/{bookId}/reviews [put]
func (h *Handler) upsertReviewHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.UpsertReviewRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	result, err := h.service.UpsertReview(r.Context(), data.ReviewInput{
		ReviewerID: user.ID,
		BookID:     bookID,
		Rating:     requestBody.Rating,
		Comment:    requestBody.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	status := http.StatusOK
	headers := make(http.Header)
	if result.Created {
		status = http.StatusCreated
		headers.Set("Location", fmt.Sprintf("/v1/reviews/%d", result.Review.ID))
	}
	err = h.encodeJSON(w, status, result, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowReview godoc
// @Summary Show details of a book review
// @Description This endpoint shows the details of a specific book review
// @Tags reviews
// @Produce json
// @Param reviewId path int true "ID of review to show"
// @Success 200 {object} data.Review
// @Failure 404
// @Failure 500
// @Router /v1/reviews/{reviewId} [get]
func (h *Handler) showReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := h.readIDParam(r, "reviewId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	review, err := h.service.GetReview(r.Context(), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"review": review}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteReview godoc
// @Summary Delete a book review
// @Description This endpoint deletes one of the user's own reviews
// @Tags reviews
// @Produce json
// @Param token header string true "Bearer token"
// @Param reviewId path int true "ID of review to delete"
// @Success 200
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/reviews/{reviewId} [delete]
func (h *Handler) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := h.readIDParam(r, "reviewId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	err = h.service.DeleteReview(r.Context(), user.ID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "review successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListReviews godoc
// @Summary List reviews for a book
// @Description This endpoint lists the reviews of a book together with its rating breakdown
// @Tags reviews
// @Produce json
// @Param bookId path int true "ID of book"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Param sort query string false "Sort by ascending or descending order. Asc: id, created_at, updated_at, rating. Desc: -id, -created_at, -updated_at, -rating"
// @Success 200 {array} data.Review
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /v1/books/{bookId}/reviews [get]
func (h *Handler) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListReviews
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", data.DefaultReviewSort)
	qsInput.Filters.SortSafeList = data.ReviewSortSafeList
	if !v.Valid() {
		h.failedValidationResponse(w, r, &service.ValidationError{Errors: v.Errors})
		return
	}
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	ratings, reviews, metadata, err := h.service.ListBookReviews(r.Context(), bookID, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"ratings": ratings, "reviews": reviews, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
