package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	allowedOrigins []string,
	employeeHandler EmployeeHandler,
	salaryHandler SalaryHandler,
	attendanceHandler AttendanceHandler,
	refDataHandler RefDataHandler,
	statusHandler StatusHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-console"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", ViewIDHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", statusHandler.Status)

		r.Get("/employees", employeeHandler.List)

		r.Route("/salaries", func(r chi.Router) {
			r.Get("/", salaryHandler.List)
			r.Get("/export", salaryHandler.Export)
			r.Get("/{id}", salaryHandler.Detail)
		})

		r.Patch("/attendance/{id}", attendanceHandler.Update)

		r.Get("/departments", refDataHandler.Departments)
		r.Get("/periods", refDataHandler.Periods)
		r.Post("/refdata/refresh", refDataHandler.Refresh)
	})
	return r
}
