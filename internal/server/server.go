package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	v1 "github.com/isidore-books/isidore/internal/api/v1"
	"github.com/isidore-books/isidore/internal/config"
	"github.com/isidore-books/isidore/internal/store"
	"github.com/isidore-books/isidore/internal/version"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartServer starts the HTTP server
func StartServer(ctx context.Context, store *store.Store) (*http.Server, error) {
	addr := config.Opts.Host
	port := config.Opts.Port
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: setupHandler(store),
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		fmt.Println("Starting HTTP server in:", server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Println("HTTP server error", err)
			os.Exit(1)
		}
	}()
}

func setupHandler(store *store.Store) http.Handler {
	router := mux.NewRouter()

	apiHandler := v1.NewHandler(store)
	v1.Server(router, apiHandler)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if !store.LibraryOk() {
			http.Error(w, "Calibre Library Not Open", http.StatusServiceUnavailable)
			return
		}
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	if config.Opts.MetricsCollector {
		router.Handle(config.Opts.MetricsPath, promhttp.Handler()).Name("metrics")
	}

	return router
}
