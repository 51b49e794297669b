package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffium/payroll-backend-go/internal/config"
	"github.com/staffium/payroll-backend-go/internal/handler/http/middleware"
	"github.com/staffium/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	salaryHandler SalaryHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	expenseHandler ExpenseHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffium-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// All routes require authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/", salaryHandler.List)
				r.Post("/", salaryHandler.Assign)
				r.Post("/preview", salaryHandler.Preview)
				r.Post("/finalize", salaryHandler.Finalize)
				r.Get("/summary", salaryHandler.Summary)
				r.Get("/employee/{employeeID}", salaryHandler.GetByEmployeePeriod)
				r.Get("/{id}", salaryHandler.Get)
				r.Put("/{id}", salaryHandler.Update)
				r.Delete("/{id}", salaryHandler.Delete)
			})

			r.Route("/policy", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/", salaryHandler.GetPolicy)
				r.Put("/", salaryHandler.UpdatePolicy)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListByDate)
				r.Get("/employee/{employeeID}", attendanceHandler.ListByEmployeeMonth)
				r.Get("/employee/{employeeID}/summary", attendanceHandler.MonthSummary)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", attendanceHandler.Mark)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)
				r.Post("/", leaveHandler.Apply)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", leaveHandler.Approve)
					r.Post("/{id}/reject", leaveHandler.Reject)
				})
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", expenseHandler.List)
				r.Post("/", expenseHandler.Submit)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", expenseHandler.Approve)
					r.Post("/{id}/reject", expenseHandler.Reject)
				})
			})
		})
	})

	return r
}
