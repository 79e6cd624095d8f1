package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/data/dto"
	"github.com/emzola/shelfwise/service"
)

// CreateDraft godoc
// @Summary Create a draft book
// @Description This endpoint creates a new draft book owned by the user
// @Tags books
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateDraftRequestBody true "JSON payload required to create a draft"
// @Success 201 {object} data.Book
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /v1/books [post]
func (h *Handler) createDraftHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateDraftRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	book, err := h.service.CreateDraft(r.Context(), data.DraftInput{
		WriterID:    user.ID,
		Title:       requestBody.Title,
		Description: requestBody.Description,
		Category:    requestBody.Category,
		Genres:      requestBody.Genres,
		Language:    requestBody.Language,
		Pages:       requestBody.Pages,
		Price:       requestBody.Price,
		CoverImage:  requestBody.CoverImage,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%d", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowBook godoc
// @Summary Show details of a book
// @Description This endpoint shows a published book, or a draft to its writer
// @Tags books
// @Produce json
// @Param bookId path int true "ID of book to show"
// @Success 200 {object} data.Book
// @Failure 404
// @Failure 500
// @Router /v1/books/{bookId} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.GetBook(r.Context(), bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	// Drafts are invisible to everyone but their writer.
	if !book.IsPublished() && h.contextGetUser(r).ID != book.UserID {
		h.notFoundResponse(w, r)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// PublishBook godoc
// @Summary Publish a draft book
// @Description This endpoint publishes one of the user's draft books
// @Tags books
// @Produce json
// @Param token header string true "Bearer token"
// @Param bookId path int true "ID of book to publish"
// @Success 200 {object} data.Book
// @Failure 403
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /v1/books/{bookId}/publish [patch]
func (h *Handler) publishBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	book, err := h.service.PublishBook(r.Context(), user.ID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
