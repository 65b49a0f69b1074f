package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/storepulse/storeops-backend-go/internal/handler/http/middleware"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	attendanceHandler AttendanceHandler,
	scheduleHandler ScheduleHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "storeops-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", attendanceHandler.Submit)
				r.Get("/summary", attendanceHandler.DaySummary)
				r.Get("/stats", attendanceHandler.PeriodStats)

				// Manager and up
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/missing", attendanceHandler.MissingRecords)
					r.Post("/from-schedule", attendanceHandler.CreateFromSchedule)
				})
			})

			r.Get("/schedules/weekly", scheduleHandler.Weekly)
			r.Get("/leave/stats", leaveHandler.Stats)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Route("/payroll", func(r chi.Router) {
					r.Post("/calculate", payrollHandler.Calculate)
					r.Post("/", payrollHandler.Save)
					r.Get("/", payrollHandler.ListMonth)
					r.Post("/{id}/email", payrollHandler.EmailPayslip)
				})
				r.Get("/reports/attendance/export", reportHandler.ExportAttendance)
			})
		})
	})

	return r
}
