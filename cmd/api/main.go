package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/paytrack/payroll-console-go/internal/config"
	"github.com/paytrack/payroll-console-go/internal/gateway"
	appHTTP "github.com/paytrack/payroll-console-go/internal/handler/http"
	"github.com/paytrack/payroll-console-go/internal/pkg/activity"
	attendanceService "github.com/paytrack/payroll-console-go/internal/service/attendance"
	employeeService "github.com/paytrack/payroll-console-go/internal/service/employee"
	"github.com/paytrack/payroll-console-go/internal/service/refdata"
	salaryService "github.com/paytrack/payroll-console-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	backend := gateway.NewClient(cfg.Backend.BaseURL, logger)
	gauge := &activity.Gauge{}

	salarySvc := salaryService.NewService(backend, gauge, cfg.Backend.ComputeConcurrency, cfg.Backend.DefaultPageSize)
	employeeSvc := employeeService.NewService(backend, gauge, cfg.Backend.DefaultPageSize)
	attendanceSvc := attendanceService.NewService(backend, salarySvc, gauge)
	refDataStore := refdata.NewStore(backend, gauge)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc, cfg.Backend.DefaultPageSize)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc, cfg.Backend.DefaultPageSize)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	refDataHandler := appHTTP.NewRefDataHandler(refDataStore)
	statusHandler := appHTTP.NewStatusHandler(gauge)

	router := appHTTP.NewRouter(
		cfg.App.AllowedOrigins,
		employeeHandler,
		salaryHandler,
		attendanceHandler,
		refDataHandler,
		statusHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
