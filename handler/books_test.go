package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/data/dto"
	"github.com/stretchr/testify/require"
)

func TestDraftAndPublishHandlers(t *testing.T) {
	ts := newTestServer(t)
	_, writerToken := ts.user(t, "writer")
	_, readerToken := ts.user(t, "reader")

	rr := ts.do(t, http.MethodPost, "/v1/books", writerToken, dto.CreateDraftRequestBody{
		Title:    "The Long Road",
		Category: "Fiction",
		Genres:   []string{"drama"},
		Language: "English",
		Pages:    320,
		Price:    9.99,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	book := decode[struct{ Book data.Book }](t, rr).Book
	require.Equal(t, data.StatusDraft, book.Status)
	target := "/v1/books/" + strconv.FormatInt(book.ID, 10)
	require.Equal(t, target, rr.Header().Get("Location"))

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, target, writerToken, nil).Code)
	require.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, target, readerToken, nil).Code)
	require.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, target, "", nil).Code)

	require.Equal(t, http.StatusForbidden, ts.do(t, http.MethodPatch, target+"/publish", readerToken, nil).Code)

	rr = ts.do(t, http.MethodPatch, target+"/publish", writerToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	published := decode[struct{ Book data.Book }](t, rr).Book
	require.Equal(t, data.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, target, "", nil).Code)
}

func TestCreateDraftHandlerValidation(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.user(t, "writer")

	rr := ts.do(t, http.MethodPost, "/v1/books", token, dto.CreateDraftRequestBody{Language: "English"})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := decode[map[string]map[string]string](t, rr)
	require.Contains(t, body["error"], "title")

	rr = ts.do(t, http.MethodPost, "/v1/books", token, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
