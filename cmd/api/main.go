package main

import (
	"fmt"
	"net/http"

	"github.com/staffium/payroll-backend-go/internal/config"
	appHTTP "github.com/staffium/payroll-backend-go/internal/handler/http"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
	"github.com/staffium/payroll-backend-go/internal/pkg/jwt"
	"github.com/staffium/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffium/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/staffium/payroll-backend-go/internal/service/employee"
	expenseService "github.com/staffium/payroll-backend-go/internal/service/expense"
	leaveService "github.com/staffium/payroll-backend-go/internal/service/leave"
	payrollService "github.com/staffium/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	salarySvc := payrollService.NewSalaryService(db, salaryRepo, policyRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, policyRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo)
	expenseSvc := expenseService.NewExpenseService(db, expenseRepo, employeeRepo)

	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	expenseHandler := appHTTP.NewExpenseHandler(expenseSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		salaryHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		expenseHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
