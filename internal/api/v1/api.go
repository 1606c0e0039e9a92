package v1

import (
	"net/http"

	"github.com/isidore-books/isidore/internal/middleware"
	"github.com/isidore-books/isidore/internal/store"
	"github.com/gorilla/mux"
)

type Handler struct {
	store *store.Store
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(store *store.Store) *Handler {
	return &Handler{store: store}
}

// Server wires the catalog API and the OPDS routes into the router.
func Server(router *mux.Router, handler *Handler) {
	m := middleware.NewMiddleware()

	sr := router.PathPrefix("/api/v1").Subrouter()
	sr.Use(m.HandleCORS)
	sr.Use(m.LoggingRequest)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/signin", handler.signIn).Methods(http.MethodPost)

	ar := sr.NewRoute().Subrouter()
	ar.Use(m.AuthenticationInterceptor)
	ar.HandleFunc("/authors", handler.listAuthors).Methods(http.MethodGet)
	ar.HandleFunc("/authors/initials", handler.authorsInitials).Methods(http.MethodGet)
	ar.HandleFunc("/authors/{id:[0-9]+}/books", handler.listAuthorBooks).Methods(http.MethodGet)
	ar.HandleFunc("/series", handler.listSeries).Methods(http.MethodGet)
	ar.HandleFunc("/series/initials", handler.seriesInitials).Methods(http.MethodGet)
	ar.HandleFunc("/series/{id:[0-9]+}/books", handler.listSeriesBooks).Methods(http.MethodGet)
	ar.HandleFunc("/tags", handler.listTags).Methods(http.MethodGet)
	ar.HandleFunc("/tags/initials", handler.tagsInitials).Methods(http.MethodGet)
	ar.HandleFunc("/tags/{id:[0-9]+}/books", handler.listTagBooks).Methods(http.MethodGet)
	ar.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	ar.HandleFunc("/books/initials", handler.titlesInitials).Methods(http.MethodGet)
	ar.HandleFunc("/books/years", handler.titlesYears).Methods(http.MethodGet)
	ar.HandleFunc("/books/{id:[0-9]+}", handler.getBookDetails).Methods(http.MethodGet)
	ar.HandleFunc("/books/{id:[0-9]+}/kindle", handler.getKindleFormat).Methods(http.MethodGet)
	ar.HandleFunc("/books/{id:[0-9]+}/download/{format}", handler.downloadBook).Methods(http.MethodGet)
	ar.HandleFunc("/books/{id:[0-9]+}/cover", handler.getCover).Methods(http.MethodGet)
	ar.HandleFunc("/stats", handler.getStats).Methods(http.MethodGet)

	opdsRouter := router.PathPrefix("/opds").Subrouter()
	opdsRouter.Use(m.LoggingRequest)
	opdsRouter.Use(m.BasicAuthInterceptor)
	opdsRouter.HandleFunc("", handler.opdsRootFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/new", handler.opdsNewBooksFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/all", handler.opdsAllBooksFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/search", handler.opdsSearchFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/authors", handler.opdsAuthorsFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/authors/{id:[0-9]+}", handler.opdsBooksByAuthorFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/series", handler.opdsSeriesFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/series/{id:[0-9]+}", handler.opdsBooksBySeriesFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/tags", handler.opdsTagsFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/tags/{id:[0-9]+}", handler.opdsBooksByTagFeed).Methods(http.MethodGet)
	opdsRouter.HandleFunc("/download/{id:[0-9]+}/{format}", handler.downloadBook).Methods(http.MethodGet)
}
