package rest

import (
	"context"
	"fmt"
	"net/http"

	chiv1middleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"listings-service/internal/core/port"
	"listings-service/internal/metrics"
)

// Server - REST API сервер сервиса объявлений.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(
	httpPort string,
	corsAllowedOrigin string,
	listingHandlers *ListingHandlers,
	inquiryHandlers *InquiryHandlers,
	profileHandlers *ProfileHandlers,
	dashboardHandlers *DashboardHandlers,
	tokens port.TokenServicePort,
	baseLogger port.LoggerPort,
) *Server {
	r := chi.NewRouter()

	// Общие middleware
	r.Use(chiv1middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(chiv1middleware.Recoverer)
	r.Use(metrics.HTTPMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsAllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		// На сколько секунд браузер может кэшировать результат preflight-запроса
		MaxAge: 300,
	}))

	// Служебные эндпоинты вне версионированного API
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// --- Публичные роуты ---
		r.Group(func(r chi.Router) {
			r.Get("/listings", listingHandlers.FindListings)
			r.Get("/listings/subscribe", listingHandlers.SubscribeToListings)
			r.Get("/listings/{listingID}", listingHandlers.GetListingByID)

			// Учет просмотра публичный, но обогащается личностью зрителя,
			// если валидный токен прислан
			r.With(OptionalAuthMiddleware(tokens)).Post("/listings/{listingID}/view", listingHandlers.TrackView)
		})

		// --- Приватные роуты ---
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))

			r.Post("/listings", listingHandlers.CreateListing)
			r.Put("/listings/{listingID}", listingHandlers.UpdateListing)
			r.Post("/listings/{listingID}/inquiries", inquiryHandlers.CreateInquiry)

			r.Get("/inquiries", inquiryHandlers.GetInquiries)
			r.Put("/inquiries/{inquiryID}/status", inquiryHandlers.UpdateInquiryStatus)

			r.Get("/dashboard/stats", dashboardHandlers.GetDashboardStats)

			r.Get("/profiles/{profileID}", profileHandlers.GetProfile)
			r.Put("/profiles/{profileID}", profileHandlers.UpdateProfile)
			r.Get("/profiles/{profileID}/subscribe", profileHandlers.SubscribeToProfile)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + httpPort,
			Handler: r,
		},
		logger: baseLogger,
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
