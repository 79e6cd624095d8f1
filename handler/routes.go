package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodPost, "/v1/books", h.requireActivatedUser(h.createDraftHandler))
	router.HandlerFunc(http.MethodGet, "/v1/books/:bookId", h.showBookHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/books/:bookId/publish", h.requireActivatedUser(h.publishBookHandler))

	router.HandlerFunc(http.MethodGet, "/v1/books/:bookId/reviews", h.listReviewsHandler)
	router.HandlerFunc(http.MethodPut, "/v1/books/:bookId/reviews", h.requireActivatedUser(h.upsertReviewHandler))
	router.HandlerFunc(http.MethodGet, "/v1/reviews/:reviewId", h.showReviewHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/reviews/:reviewId", h.requireActivatedUser(h.deleteReviewHandler))

	router.HandlerFunc(http.MethodGet, "/v1/users/:userId/follow", h.requireActivatedUser(h.showFollowHandler))
	router.HandlerFunc(http.MethodPost, "/v1/users/:userId/follow", h.requireActivatedUser(h.followUserHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/users/:userId/follow", h.requireActivatedUser(h.unfollowUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/:userId/followers", h.listFollowersHandler)

	router.HandlerFunc(http.MethodGet, "/v1/feed", h.requireActivatedUser(h.personalFeedHandler))
	router.HandlerFunc(http.MethodGet, "/v1/feed/global", h.globalFeedHandler)

	router.HandlerFunc(http.MethodGet, "/v1/trending", h.trendingHandler)
	router.HandlerFunc(http.MethodGet, "/v1/categories", h.listCategoriesHandler)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.metrics(h.requestID(h.recoverPanic(h.enableCORS(h.rateLimit(h.authenticate(router))))))
}
