package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/storepulse/storeops-backend-go/internal/config"
	appHTTP "github.com/storepulse/storeops-backend-go/internal/handler/http"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
	"github.com/storepulse/storeops-backend-go/internal/pkg/cron"
	"github.com/storepulse/storeops-backend-go/internal/pkg/database"
	"github.com/storepulse/storeops-backend-go/internal/pkg/email"
	"github.com/storepulse/storeops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/storepulse/storeops-backend-go/internal/service/attendance"
	leaveService "github.com/storepulse/storeops-backend-go/internal/service/leave"
	payrollService "github.com/storepulse/storeops-backend-go/internal/service/payroll"
	reportService "github.com/storepulse/storeops-backend-go/internal/service/report"
	scheduleService "github.com/storepulse/storeops-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	clk := clock.System()
	calendar := clock.NewCalendar(cfg.Attendance.TimezoneOffsetMinutes)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db, calendar)
	attendanceRepo := postgresql.NewAttendanceRepository(db, calendar)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db, calendar)
	payrollRepo := postgresql.NewPayrollRepository(db)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	resolver := scheduleService.NewResolver(scheduleRepo, leaveRequestRepo, employeeRepo, calendar, clk)
	recorder := attendanceService.NewRecorder(
		attendanceRepo,
		employeeRepo,
		locationRepo,
		resolver,
		calendar,
		clk,
		cfg.Attendance,
	)
	aggregator := attendanceService.NewAggregator(
		attendanceRepo,
		scheduleRepo,
		employeeRepo,
		calendar,
		clk,
		cfg.Attendance,
	)
	ledger := leaveService.NewLedger(leaveRequestRepo, employeeRepo, calendar, clk)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, emailService)
	reportSvc := reportService.NewReportService(aggregator)

	attendanceHandler := appHTTP.NewAttendanceHandler(recorder, aggregator)
	scheduleHandler := appHTTP.NewScheduleHandler(resolver)
	leaveHandler := appHTTP.NewLeaveHandler(ledger)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	attendanceJobs := cron.NewAttendanceJobs(aggregator, calendar, clk)
	scheduler := cron.NewScheduler()
	scheduler.AddJob("scan-missing-records", 24*time.Hour, attendanceJobs.ScanMissingRecords)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		tokenAuth,
		attendanceHandler,
		scheduleHandler,
		leaveHandler,
		payrollHandler,
		reportHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
