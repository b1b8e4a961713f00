package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/config"
	appHTTP "github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/database"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/jwt"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/oauth"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/sse"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/repository/postgresql"
	absenceService "github.com/deskcontrol/deskcontrol-backend-go/internal/service/absence"
	attendanceService "github.com/deskcontrol/deskcontrol-backend-go/internal/service/attendance"
	authService "github.com/deskcontrol/deskcontrol-backend-go/internal/service/auth"
	dashboardService "github.com/deskcontrol/deskcontrol-backend-go/internal/service/dashboard"
	notificationService "github.com/deskcontrol/deskcontrol-backend-go/internal/service/notification"
	profileService "github.com/deskcontrol/deskcontrol-backend-go/internal/service/profile"
	taskService "github.com/deskcontrol/deskcontrol-backend-go/internal/service/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	absenceRepo := postgresql.NewAbsenceRequestRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	hub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, logger, notificationService.Config{})
	defer notificationSvc.Shutdown()

	authSvc := authService.NewAuthService(db, userRepo, profileRepo, JWTService)
	profileSvc := profileService.NewProfileService(db, profileRepo, userRepo, absenceRepo, taskRepo, notificationRepo, notificationSvc)
	absenceSvc := absenceService.NewAbsenceService(absenceRepo, userRepo, notificationSvc)
	taskSvc := taskService.NewTaskService(taskRepo, notificationSvc)
	attendanceSvc := attendanceService.NewAttendanceService(profileRepo, absenceRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, profileRepo, attendanceSvc)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	profileHandler := appHTTP.NewProfileHandler(profileSvc)
	absenceHandler := appHTTP.NewAbsenceHandler(absenceSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	teamHandler := appHTTP.NewTeamHandler(attendanceSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, JWTService, hub)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		profileHandler,
		absenceHandler,
		taskHandler,
		teamHandler,
		dashboardHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
