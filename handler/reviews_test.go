package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/data/dto"
	"github.com/stretchr/testify/require"
)

func TestUpsertReviewHandler(t *testing.T) {
	ts := newTestServer(t)
	writer, _ := ts.user(t, "writer")
	_, alice := ts.user(t, "alice")
	book := ts.published(t, writer.ID, "Dune")
	target := "/v1/books/" + strconv.FormatInt(book.ID, 10) + "/reviews"

	rr := ts.do(t, http.MethodPut, target, alice, dto.UpsertReviewRequestBody{Rating: 5, Comment: "great"})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[data.ReviewResult](t, rr)
	require.True(t, created.Created)
	require.Equal(t, "/v1/reviews/"+strconv.FormatInt(created.Review.ID, 10), rr.Header().Get("Location"))

	rr = ts.do(t, http.MethodPut, target, alice, dto.UpsertReviewRequestBody{Rating: 3})
	require.Equal(t, http.StatusOK, rr.Code)
	replaced := decode[data.ReviewResult](t, rr)
	require.False(t, replaced.Created)
	require.Equal(t, created.Review.ID, replaced.Review.ID)
	require.EqualValues(t, 3, replaced.Review.Rating)

	rr = ts.do(t, http.MethodGet, "/v1/books/"+strconv.FormatInt(book.ID, 10), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	shown := decode[struct{ Book data.Book }](t, rr)
	require.EqualValues(t, 1, shown.Book.ReviewCount)
	require.Equal(t, 3.0, shown.Book.AverageRating)
}

func TestUpsertReviewHandlerErrors(t *testing.T) {
	ts := newTestServer(t)
	writer, writerToken := ts.user(t, "writer")
	_, alice := ts.user(t, "alice")
	book := ts.published(t, writer.ID, "Dune")
	target := "/v1/books/" + strconv.FormatInt(book.ID, 10) + "/reviews"

	tests := []struct {
		name   string
		target string
		token  string
		body   any
		status int
	}{
		{"anonymous", target, "", dto.UpsertReviewRequestBody{Rating: 5}, http.StatusUnauthorized},
		{"rating out of range", target, alice, dto.UpsertReviewRequestBody{Rating: 6}, http.StatusUnprocessableEntity},
		{"fractional rating", target, alice, map[string]any{"rating": 4.5}, http.StatusUnprocessableEntity},
		{"rating beyond int8", target, alice, map[string]any{"rating": 300}, http.StatusUnprocessableEntity},
		{"unknown field", target, alice, map[string]any{"rating": 5, "stars": 2}, http.StatusBadRequest},
		{"unknown book", "/v1/books/999/reviews", alice, dto.UpsertReviewRequestBody{Rating: 4}, http.StatusNotFound},
		{"own book", target, writerToken, dto.UpsertReviewRequestBody{Rating: 5}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.do(t, http.MethodPut, tt.target, tt.token, tt.body)
			require.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestDeleteReviewHandler(t *testing.T) {
	ts := newTestServer(t)
	writer, _ := ts.user(t, "writer")
	_, alice := ts.user(t, "alice")
	_, bob := ts.user(t, "bob")
	book := ts.published(t, writer.ID, "Dune")

	rr := ts.do(t, http.MethodPut, "/v1/books/"+strconv.FormatInt(book.ID, 10)+"/reviews", alice, dto.UpsertReviewRequestBody{Rating: 4})
	require.Equal(t, http.StatusCreated, rr.Code)
	review := decode[data.ReviewResult](t, rr).Review
	target := "/v1/reviews/" + strconv.FormatInt(review.ID, 10)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, target, "", nil).Code)
	require.Equal(t, http.StatusForbidden, ts.do(t, http.MethodDelete, target, bob, nil).Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodDelete, target, alice, nil).Code)
	require.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, target, "", nil).Code)
}

func TestListReviewsHandler(t *testing.T) {
	ts := newTestServer(t)
	writer, _ := ts.user(t, "writer")
	_, alice := ts.user(t, "alice")
	_, bob := ts.user(t, "bob")
	book := ts.published(t, writer.ID, "Dune")
	target := "/v1/books/" + strconv.FormatInt(book.ID, 10) + "/reviews"

	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPut, target, alice, dto.UpsertReviewRequestBody{Rating: 5}).Code)
	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPut, target, bob, dto.UpsertReviewRequestBody{Rating: 4}).Code)

	rr := ts.do(t, http.MethodGet, target+"?sort=-rating", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Ratings  data.Rating
		Reviews  []data.Review
		Metadata data.Metadata
	}](t, rr)
	require.EqualValues(t, 2, body.Ratings.Total)
	require.Equal(t, 4.5, body.Ratings.Average)
	require.Len(t, body.Reviews, 2)
	require.EqualValues(t, 5, body.Reviews[0].Rating)
	require.Equal(t, 2, body.Metadata.TotalRecords)

	require.Equal(t, http.StatusUnprocessableEntity, ts.do(t, http.MethodGet, target+"?sort=comment", "", nil).Code)
	require.Equal(t, http.StatusUnprocessableEntity, ts.do(t, http.MethodGet, target+"?page=abc", "", nil).Code)
}
