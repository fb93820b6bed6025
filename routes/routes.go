package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/forgehq/hackforge/handlers"
	"github.com/forgehq/hackforge/middleware"
)

// SetupRoutes mounts the full HTTP surface. Route protection runs in
// two phases installed globally: the edge guard (token presence) and
// the role guard (token verification + role lookup). Handlers can
// therefore assume an authenticated identity on protected paths.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	roles middleware.RoleStore,
	hackathonHandler *handlers.HackathonHandler,
	participantHandler *handlers.ParticipantHandler,
	teamHandler *handlers.TeamHandler,
	projectHandler *handlers.ProjectHandler,
	submissionHandler *handlers.SubmissionHandler,
	judgingHandler *handlers.JudgingHandler,
	dashboardHandler *handlers.DashboardHandler,
	prizeHandler *handlers.PrizeHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.EdgeGuard)
	router.Use(middleware.RoleGuard(jwtSecret, roles))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Get("/public-hackathons", hackathonHandler.PublicListHandler)

	router.Route("/hackathons", func(r chi.Router) {
		r.Get("/", hackathonHandler.ListHandler)
		r.Post("/", hackathonHandler.CreateHandler)

		r.Route("/{hackathonID}", func(r chi.Router) {
			r.Get("/", hackathonHandler.GetByIDHandler)
			r.Get("/dashboard", dashboardHandler.StatsHandler)
			r.Get("/live", webSocketHandler.ServeWs)

			// Organizer-only section (enforced by the role guard).
			r.Route("/setup", func(r chi.Router) {
				r.Post("/transition", hackathonHandler.TransitionHandler)
				r.Post("/logo", hackathonHandler.UploadLogoHandler)
			})

			r.Route("/participants", func(r chi.Router) {
				r.Get("/", participantHandler.ListHandler)
				r.Post("/", participantHandler.EnrollHandler)
			})

			r.Route("/prizes", func(r chi.Router) {
				r.Get("/", prizeHandler.ListHandler)
				r.Post("/", prizeHandler.CreateHandler)
			})

			// Builder-or-organizer section.
			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.ListHandler)
				r.Post("/", teamHandler.CreateHandler)
				r.Get("/{teamID}", teamHandler.GetByIDHandler)
				r.Post("/{teamID}/join", teamHandler.JoinHandler)
				r.Post("/{teamID}/leave", teamHandler.LeaveHandler)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.ListHandler)
				r.Post("/", projectHandler.CreateHandler)
				r.Get("/{projectID}", projectHandler.GetByIDHandler)
				r.Patch("/{projectID}", projectHandler.UpdateHandler)
			})

			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", submissionHandler.ListHandler)
				r.Post("/", submissionHandler.CreateHandler)
				r.Get("/search", submissionHandler.SearchHandler)
				r.Post("/artifacts", submissionHandler.UploadArtifactHandler)
				r.Get("/{submissionID}", submissionHandler.GetByIDHandler)
			})

			// Judge-only section.
			r.Route("/judging", func(r chi.Router) {
				r.Get("/queue", judgingHandler.QueueHandler)
				r.Post("/scores", judgingHandler.ScoreHandler)
			})
		})
	})
}
