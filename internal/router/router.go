package router

import (
	"PlanPhotos/internal/handler"
	"PlanPhotos/internal/metrics"
	"PlanPhotos/internal/repository/postgres"
	"PlanPhotos/internal/schema"
	"PlanPhotos/internal/service"
	"PlanPhotos/internal/storage"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func setCORSHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if the request is from a client
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

func loggingMiddleware(log *logrus.Entry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debugf("http: %s %s (%s)", r.Method, r.RequestURI, time.Since(start))
		})
	}
}

// NewRouter wires the photo API on db and store. CORS headers wrap the whole
// router so preflights reach routes registered for other methods.
func NewRouter(db *sql.DB, store storage.Store, log *logrus.Logger) (http.Handler, error) {
	r := mux.NewRouter()

	m := metrics.New()
	photoRepo := postgres.NewPhotoRepository(db)
	photoService := service.NewPhotoService(photoRepo, log.WithField("component", "photos"))

	gqlSchema, err := schema.New(photoService, m)
	if err != nil {
		return nil, err
	}

	r.Use(loggingMiddleware(log.WithField("component", "http")))

	r.Handle("/graphql", handler.GraphQL(gqlSchema, log.WithField("component", "graphql"))).Methods("POST")
	r.Handle("/upload", handler.Upload(store, m, log.WithField("component", "upload"))).Methods("POST")
	r.Handle("/media/{owner}/{collection}/{planId}/{file}", handler.Media(store, log.WithField("component", "media"))).Methods("GET")
	r.Handle("/metrics", m.Handler()).Methods("GET")

	return setCORSHeaders(r), nil
}
