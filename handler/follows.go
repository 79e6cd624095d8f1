package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/shelfwise/data/dto"
	"github.com/emzola/shelfwise/internal/validator"
	"github.com/emzola/shelfwise/service"
)

// FollowUser godoc
// @Summary Follow a user
// @Description This endpoint makes the user follow another user. Following twice is not an error
// @Tags follows
// @Produce json
// @Param token header string true "Bearer token"
// @Param userId path int true "ID of user to follow"
// @Success 200 {object} data.FollowResult
// @Success 201 {object} data.FollowResult
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /v1/users/{userId}/follow [post]
func (h *Handler) followUserHandler(w http.ResponseWriter, r *http.Request) {
	followingID, err := h.readIDParam(r, "userId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	result, err := h.service.Follow(r.Context(), user.ID, followingID)
	if err != nil {
		h.followErrorResponse(w, r, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	err = h.encodeJSON(w, status, result, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UnfollowUser godoc
// @Summary Unfollow a user
// @Description This endpoint removes the follow edge between the user and another user
// @Tags follows
// @Produce json
// @Param token header string true "Bearer token"
// @Param userId path int true "ID of user to unfollow"
// @Success 200 {object} data.FollowResult
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /v1/users/{userId}/follow [delete]
func (h *Handler) unfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	followingID, err := h.readIDParam(r, "userId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	result, err := h.service.Unfollow(r.Context(), user.ID, followingID)
	if err != nil {
		h.followErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, result, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowFollow godoc
// @Summary Show follow status
// @Description This endpoint reports whether the user follows another user
// @Tags follows
// @Produce json
// @Param token header string true "Bearer token"
// @Param userId path int true "ID of followed user"
// @Success 200 {object} data.FollowResult
// @Failure 404
// @Failure 500
// @Router /v1/users/{userId}/follow [get]
func (h *Handler) showFollowHandler(w http.ResponseWriter, r *http.Request) {
	followingID, err := h.readIDParam(r, "userId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	result, err := h.service.FollowStatus(r.Context(), user.ID, followingID)
	if err != nil {
		h.followErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, result, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListFollowers godoc
// @Summary List followers of a user
// @Description This endpoint lists the users following a user
// @Tags follows
// @Produce json
// @Param userId path int true "ID of followed user"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Success 200 {array} data.User
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /v1/users/{userId}/followers [get]
func (h *Handler) listFollowersHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListFollowers
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 20, v)
	if !v.Valid() {
		h.failedValidationResponse(w, r, &service.ValidationError{Errors: v.Errors})
		return
	}
	userID, err := h.readIDParam(r, "userId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	followers, metadata, err := h.service.ListFollowers(r.Context(), userID, qsInput.Filters)
	if err != nil {
		h.followErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"followers": followers, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) followErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		h.notFoundResponse(w, r)
	case errors.Is(err, service.ErrSelfFollow):
		h.selfFollowResponse(w, r)
	case errors.Is(err, service.ErrFailedValidation):
		h.failedValidationResponse(w, r, err)
	default:
		h.serverErrorResponse(w, r, err)
	}
}
