package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sunlighthq/tasks-service/internal/api/handlers"
	"github.com/sunlighthq/tasks-service/internal/infrastructure/auth"
	"github.com/sunlighthq/tasks-service/internal/repository"
	"github.com/sunlighthq/tasks-service/internal/usecase"
)

func NewRouter(
	taskService *usecase.TaskService,
	authService *usecase.AuthService,
	jwtManager *auth.JWTManager,
	userRepo repository.IUserRepository,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	taskHandler := handlers.NewTaskHandler(taskService)
	authHandler := handlers.NewAuthHandler(authService)
	requireAuth := AuthMiddleware(jwtManager, userRepo)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Sunlight Tasks API is running!"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/stats", taskHandler.Stats)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTask)
				r.Put("/", taskHandler.UpdateTask)
				r.Delete("/", taskHandler.DeleteTask)
			})
		})
	})

	return r
}
