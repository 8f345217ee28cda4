package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"musicapp/audit"
	"musicapp/config"
	"musicapp/db"
	"musicapp/logger"
	"musicapp/model"
	"musicapp/repository"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.CloseGormDB()

	if err := db.AutoMigrateModels(
		&model.Musician{},
		&model.Album{},
		&model.Track{},
		&model.UserActionLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	musicianRepo := repository.NewGormMusicianRepository(db.GormDB)
	albumRepo := repository.NewGormAlbumRepository(db.GormDB)
	trackRepo := repository.NewGormTrackRepository(db.GormDB)
	actionLogRepo := repository.NewGormActionLogRepository(db.GormDB)
	auditLogger := audit.NewLogger(actionLogRepo)

	apiHandler := NewAPIHandler(musicianRepo, albumRepo, trackRepo, actionLogRepo, auditLogger)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestMetaMiddleware)

	RegisterRoutes(router, apiHandler)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s...", cfg.ServerAddr)
		log.Println("Manage the catalog via /api/Musician, /api/Album and /api/Track endpoints")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// RegisterRoutes mounts all API endpoints on the router.
func RegisterRoutes(router *mux.Router, h *APIHandler) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/Musician", h.GetMusiciansHandler).Methods(http.MethodGet)
	api.HandleFunc("/Musician", h.CreateMusicianHandler).Methods(http.MethodPost)
	api.HandleFunc("/Musician/{id}", h.GetMusicianHandler).Methods(http.MethodGet)
	api.HandleFunc("/Musician/{id}", h.UpdateMusicianHandler).Methods(http.MethodPut)
	api.HandleFunc("/Musician/{id}", h.DeleteMusicianHandler).Methods(http.MethodDelete)

	api.HandleFunc("/Album", h.GetAlbumsHandler).Methods(http.MethodGet)
	api.HandleFunc("/Album", h.CreateAlbumHandler).Methods(http.MethodPost)
	api.HandleFunc("/Album/{id}", h.GetAlbumHandler).Methods(http.MethodGet)
	api.HandleFunc("/Album/{id}", h.UpdateAlbumHandler).Methods(http.MethodPut)
	api.HandleFunc("/Album/{id}", h.DeleteAlbumHandler).Methods(http.MethodDelete)

	api.HandleFunc("/Track", h.GetTracksHandler).Methods(http.MethodGet)
	api.HandleFunc("/Track", h.CreateTrackHandler).Methods(http.MethodPost)
	api.HandleFunc("/Track/{id}", h.GetTrackHandler).Methods(http.MethodGet)
	api.HandleFunc("/Track/{id}", h.UpdateTrackHandler).Methods(http.MethodPut)
	api.HandleFunc("/Track/{id}", h.DeleteTrackHandler).Methods(http.MethodDelete)

	api.HandleFunc("/Track/{id}/favorite", h.AddToFavoritesHandler).Methods(http.MethodPost)
	api.HandleFunc("/Track/{id}/favorite", h.RemoveFromFavoritesHandler).Methods(http.MethodDelete)
	api.HandleFunc("/Track/{id}/listened", h.MarkAsListenedHandler).Methods(http.MethodPost)
	api.HandleFunc("/Track/{id}/rate", h.RateTrackHandler).Methods(http.MethodPost)

	api.HandleFunc("/ActionLog", h.GetActionLogHandler).Methods(http.MethodGet)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestMetaMiddleware tags each request with an id and stores the client
// origin in the context for the audit logger.
func requestMetaMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		meta := audit.RequestMeta{
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
		}
		ctx := audit.WithMeta(r.Context(), meta)

		logger.Debug("request received",
			logger.String("requestId", requestID),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.String("ip", meta.IPAddress),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP resolves the request origin address, preferring the first
// X-Forwarded-For hop when a proxy added one.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
