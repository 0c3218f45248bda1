package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	attendanceapp "github.com/hrm/backend/internal/application/attendance"
	auditapp "github.com/hrm/backend/internal/application/audit"
	billingapp "github.com/hrm/backend/internal/application/billing"
	contractapp "github.com/hrm/backend/internal/application/contract"
	identityapp "github.com/hrm/backend/internal/application/identity"
	projectapp "github.com/hrm/backend/internal/application/project"
	skillapp "github.com/hrm/backend/internal/application/skill"
	systemapp "github.com/hrm/backend/internal/application/system"
	"github.com/hrm/backend/internal/infrastructure/auth"
	"github.com/hrm/backend/internal/infrastructure/config"
	"github.com/hrm/backend/internal/infrastructure/esign"
	"github.com/hrm/backend/internal/infrastructure/logger"
	"github.com/hrm/backend/internal/infrastructure/notify"
	"github.com/hrm/backend/internal/infrastructure/persistence"
	"github.com/hrm/backend/internal/infrastructure/spreadsheet"
	"github.com/hrm/backend/internal/interfaces/http/handler"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
	"github.com/hrm/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting HRM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	loc := cfg.Location()

	// Initialize repositories
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	accountRepo := persistence.NewGormUserAccountRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	scheduleRepo := persistence.NewGormWorkScheduleRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	positionRepo := persistence.NewGormPositionRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)
	plRepo := persistence.NewGormPLRepository(db.DB)
	selfReportRepo := persistence.NewGormSelfReportRepository(db.DB)
	skillCategoryRepo := persistence.NewGormCategoryRepository(db.DB)
	skillRepo := persistence.NewGormSkillRepository(db.DB)
	memberSkillRepo := persistence.NewGormMemberSkillRepository(db.DB)
	evaluationRepo := persistence.NewGormEvaluationRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	configRepo := persistence.NewGormConfigRepository(db.DB)
	toolRepo := persistence.NewGormToolRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	identityScope := persistence.NewGormIdentityTransactionScope(db.DB)
	projectScope := persistence.NewGormProjectTransactionScope(db.DB)

	// Outbound adapters
	sessions := auth.NewSessionService(cfg.Session)
	cookies := auth.NewCookieWriter(cfg.Cookie)
	notifier := notify.NewSlackNotifier(cfg.Slack, log)
	mailer := notify.NewSMTPMailer(cfg.SMTP, log)
	esignClient := esign.NewClient(cfg.ESign.BaseURL, cfg.ESign.APIKey, cfg.ESign.WebhookSecret)
	workbook := spreadsheet.NewInvoiceWorkbook(cfg.Issuer)

	// Initialize application services
	authService := identityapp.NewAuthService(accountRepo, memberRepo, sessions, log)
	memberService := identityapp.NewMemberService(memberRepo, accountRepo, identityScope, log)
	attendanceService := attendanceapp.NewAttendanceService(attendanceRepo, memberRepo, notifier, loc, log)
	scheduleService := attendanceapp.NewScheduleService(
		scheduleRepo, attendanceRepo, memberRepo, assignmentRepo, projectRepo, notifier, loc, log)
	projectService := projectapp.NewProjectService(
		projectRepo, positionRepo, assignmentRepo, plRepo, projectScope, log)
	selfReportService := projectapp.NewSelfReportService(selfReportRepo, projectRepo, log)
	skillService := skillapp.NewSkillService(skillCategoryRepo, skillRepo, memberSkillRepo, log)
	evaluationService := skillapp.NewEvaluationService(evaluationRepo, log)
	invoiceService := billingapp.NewInvoiceService(
		invoiceRepo, memberRepo, workbook, mailer, cfg.SMTP.AccountingEmail, log)
	closingService := billingapp.NewClosingService(
		memberRepo, attendanceRepo, scheduleRepo, invoiceRepo, log)
	contractService := contractapp.NewContractService(contractRepo, memberRepo, esignClient, log)
	systemService := systemapp.NewSystemService(configRepo, toolRepo, memberRepo, log)
	auditService := auditapp.NewAuditService(auditRepo)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, cookies)
	memberHandler := handler.NewMemberHandler(memberService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	projectHandler := handler.NewProjectHandler(projectService)
	selfReportHandler := handler.NewSelfReportHandler(selfReportService)
	skillHandler := handler.NewSkillHandler(skillService, evaluationService)
	billingHandler := handler.NewBillingHandler(invoiceService, closingService)
	contractHandler := handler.NewContractHandler(contractService, esignClient)
	systemHandler := handler.NewSystemHandler(systemService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{middleware.RequestIDKey},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning and authentication)
	engine.GET("/health", healthHandler(db))

	// Session authentication for everything under the API prefix. Login and
	// the e-signature webhook authenticate by other means.
	engine.Use(middleware.SessionAuth(sessions, cookies,
		"/health",
		"/api/v1/auth/login",
		"/api/v1/webhooks/esign",
	))

	// Register route groups
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(
		authHandler,
		memberHandler,
		attendanceHandler,
		scheduleHandler,
		projectHandler,
		selfReportHandler,
		skillHandler,
		billingHandler,
		contractHandler,
		systemHandler,
		auditHandler,
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

// healthHandler reports process and database liveness
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
