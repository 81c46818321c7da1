package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"desideri.com/pugliaclub/internal/config"
	"desideri.com/pugliaclub/internal/middleware"
	"desideri.com/pugliaclub/internal/scheduler"
	"desideri.com/pugliaclub/pkg/database"
	"desideri.com/pugliaclub/pkg/mailer"
	"desideri.com/pugliaclub/pkg/media"
	"desideri.com/pugliaclub/pkg/metrics"
	"desideri.com/pugliaclub/pkg/storage"

	actionHttp "desideri.com/pugliaclub/internal/modules/action/delivery/http"
	actionRepo "desideri.com/pugliaclub/internal/modules/action/repository"
	actionService "desideri.com/pugliaclub/internal/modules/action/service"

	adminHttp "desideri.com/pugliaclub/internal/modules/admin/delivery/http"
	adminService "desideri.com/pugliaclub/internal/modules/admin/service"

	clubcardHttp "desideri.com/pugliaclub/internal/modules/clubcard/delivery/http"
	clubcardService "desideri.com/pugliaclub/internal/modules/clubcard/service"

	emailHttp "desideri.com/pugliaclub/internal/modules/email/delivery/http"
	emailRepo "desideri.com/pugliaclub/internal/modules/email/repository"
	emailService "desideri.com/pugliaclub/internal/modules/email/service"

	leaderboardHttp "desideri.com/pugliaclub/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "desideri.com/pugliaclub/internal/modules/leaderboard/repository"
	leaderboardService "desideri.com/pugliaclub/internal/modules/leaderboard/service"

	missionHttp "desideri.com/pugliaclub/internal/modules/mission/delivery/http"
	missionRepo "desideri.com/pugliaclub/internal/modules/mission/repository"
	missionService "desideri.com/pugliaclub/internal/modules/mission/service"

	notiHttp "desideri.com/pugliaclub/internal/modules/notification/delivery/http"
	notifRepo "desideri.com/pugliaclub/internal/modules/notification/repository"
	notifService "desideri.com/pugliaclub/internal/modules/notification/service"

	prizeHttp "desideri.com/pugliaclub/internal/modules/prize/delivery/http"
	prizeRepo "desideri.com/pugliaclub/internal/modules/prize/repository"
	prizeService "desideri.com/pugliaclub/internal/modules/prize/service"

	profileHttp "desideri.com/pugliaclub/internal/modules/profile/delivery/http"
	profileService "desideri.com/pugliaclub/internal/modules/profile/service"

	searchService "desideri.com/pugliaclub/internal/modules/search/service"

	statHttp "desideri.com/pugliaclub/internal/modules/stat/delivery/http"
	statService "desideri.com/pugliaclub/internal/modules/stat/service"

	translationHttp "desideri.com/pugliaclub/internal/modules/translation/delivery/http"
	translationRepo "desideri.com/pugliaclub/internal/modules/translation/repository"
	translationService "desideri.com/pugliaclub/internal/modules/translation/service"

	userHttp "desideri.com/pugliaclub/internal/modules/user/delivery/http"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	userService "desideri.com/pugliaclub/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Server struct {
	cfg         *config.Config
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	scheduler   *scheduler.Scheduler
	httpServer  *http.Server
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	now := cfg.Now

	var imageStorage storage.ImageStorage
	if storage.Configured() {
		cld, err := storage.NewCloudinaryStorage(cfg.CloudinaryUploadFolder)
		if err != nil {
			return nil, err
		}
		imageStorage = cld
	} else {
		log.Warn().Msg("cloudinary is not configured, images are stored as data URLs")
	}
	publisher := media.NewPublisher(imageStorage)

	var meiliClient meilisearch.ServiceManager
	if host := cfg.MeiliSearchHost; host != "" {
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient = meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}
	memberSearch := searchService.NewMemberSearchService(meiliClient)

	userRepository := userRepo.NewUserRepository(db)

	authSvc := userService.NewAuthService(userRepository, publisher, memberSearch, userService.Config{
		Secret:             cfg.JWTSecret,
		TokenTTL:           cfg.JWTTTL,
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		GoogleRedirectURL:  cfg.GoogleRedirectURL,
	}, now)
	authHandler := userHttp.NewAuthHandler(authSvc)

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient, originChecker(cfg.AllowedOrigins))

	prizeSvc := prizeService.NewPrizeService(prizeRepo.NewPrizeRepository(db), publisher, now)
	prizeHandler := prizeHttp.NewPrizeHandler(prizeSvc)

	leaderboardSvc := leaderboardService.NewLeaderboardService(leaderboardRepo.NewLeaderboardRepository(db), userRepository, notificationSvc, prizeSvc, now)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	actionSvc := actionService.NewActionService(actionRepo.NewActionRepository(db), leaderboardSvc, notificationSvc, redisClient, cfg.RateLimitSubmission, now)
	actionHandler := actionHttp.NewActionHandler(actionSvc)

	missionSvc := missionService.NewMissionService(missionRepo.NewMissionRepository(db), leaderboardSvc, notificationSvc, publisher, redisClient, cfg.RateLimitSubmission, now)
	missionHandler := missionHttp.NewMissionHandler(missionSvc)

	profileSvc := profileService.NewProfileService(userRepository, actionSvc, missionSvc, leaderboardSvc, memberSearch)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	statHandler := statHttp.NewStatHandler(statService.NewStatService(userRepository))

	cardSvc := clubcardService.NewClubCardService(userRepository, leaderboardSvc, missionSvc, prizeSvc, cfg.PublicBaseURL, now)
	cardHandler := clubcardHttp.NewClubCardHandler(cardSvc)

	adminSvc := adminService.NewAdminService(userRepository, leaderboardSvc, memberSearch, actionSvc, missionSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	emailSvc := emailService.NewEmailService(emailRepo.NewEmailLogRepository(db), userRepository, mailer.New(cfg.SMTP), now)
	emailHandler := emailHttp.NewEmailHandler(emailSvc)

	translationSvc := translationService.NewTranslationService(translationRepo.NewTranslationRepository(db), redisClient, now)
	translationHandler := translationHttp.NewTranslationHandler(translationSvc)

	sched := scheduler.New(cron.WithLocation(cfg.Location))
	if err := sched.RegisterJob(leaderboardService.NewMonthlyCloseJob(leaderboardSvc, cfg.MonthlyCloseCron, now)); err != nil {
		return nil, err
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(metrics.Middleware())

	s := &Server{
		cfg:         cfg,
		engine:      router,
		db:          db,
		redisClient: redisClient,
		scheduler:   sched,
	}

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	authMiddleware := middleware.NewAuthMiddleware(userRepository, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/google/login", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}
	api.GET("/users/count", statHandler.GetTotalMembers)
	api.GET("/translations", translationHandler.GetTranslations)
	api.GET("/club-card/qr/:user_id", cardHandler.CheckCard)
	api.GET("/club/profile/:user_id", cardHandler.PublicProfile)

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/upload-avatar", authHandler.UploadAvatar)

		protected.GET("/user/profile", profileHandler.GetProfile)
		protected.PUT("/user/profile", profileHandler.UpdateProfile)
		protected.PUT("/user/language", profileHandler.UpdateLanguage)

		protected.GET("/actions/types", actionHandler.ListTypes)
		protected.POST("/actions/submit", actionHandler.Submit)
		protected.GET("/actions/history", actionHandler.History)

		protected.GET("/missions", missionHandler.List)
		protected.POST("/missions/:id/complete", missionHandler.Complete)
		protected.POST("/missions/:id/submit", missionHandler.Submit)

		protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		protected.GET("/leaderboard/history", leaderboardHandler.GetHistory)

		protected.GET("/prizes", prizeHandler.List)

		protected.GET("/club-card", cardHandler.GetCard)
		protected.GET("/club-card/qr.png", cardHandler.QRCode)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/dashboard", adminHandler.Dashboard)
			adminGroup.GET("/users/list", adminHandler.ListUsers)
			adminGroup.GET("/users/search", adminHandler.SearchUsers)
			adminGroup.POST("/users/:id/points", adminHandler.AdjustPoints)

			adminGroup.GET("/actions/pending", actionHandler.ListPending)
			adminGroup.PUT("/actions/:id/verify", actionHandler.Verify)

			adminGroup.GET("/missions", missionHandler.ListAll)
			adminGroup.POST("/missions", missionHandler.Create)
			adminGroup.GET("/missions/statistics", missionHandler.Statistics)
			adminGroup.GET("/missions/submissions/pending", missionHandler.PendingSubmissions)
			adminGroup.PUT("/missions/submissions/:id/verify", missionHandler.VerifySubmission)
			adminGroup.PUT("/missions/:id", missionHandler.Update)
			adminGroup.DELETE("/missions/:id", missionHandler.Delete)

			adminGroup.POST("/leaderboard/close", leaderboardHandler.CloseMonth)

			adminGroup.GET("/prizes", prizeHandler.List)
			adminGroup.POST("/prizes/upload-image", prizeHandler.UploadImage)
			adminGroup.PUT("/prizes/:position", prizeHandler.Update)
			adminGroup.DELETE("/prizes/:position", prizeHandler.Restore)
			adminGroup.PUT("/prizes/:position/claim", prizeHandler.Claim)

			adminGroup.POST("/email/test", emailHandler.SendTest)
			adminGroup.POST("/email/send", emailHandler.Send)
			adminGroup.GET("/email/logs", emailHandler.Logs)

			adminGroup.GET("/translations", translationHandler.List)
			adminGroup.POST("/translations", translationHandler.Upsert)
			adminGroup.DELETE("/translations/:key", translationHandler.Delete)
		}
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "ok", "database": "ok"}
	code := http.StatusOK

	if err := database.Ping(ctx, s.db); err != nil {
		body["status"] = "degraded"
		body["database"] = err.Error()
		code = http.StatusServiceUnavailable
	}

	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			body["redis"] = err.Error()
		} else {
			body["redis"] = "ok"
		}
	}

	c.JSON(code, body)
}

// Run starts the scheduler and serves HTTP until Shutdown is called.
func (s *Server) Run(addr string) error {
	s.scheduler.Start()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.scheduler.Stop()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// originChecker restricts WebSocket upgrades to the configured frontends.
// Clients that send no Origin header are not browsers and are let through.
func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[strings.TrimRight(origin, "/")]
		return ok
	}
}
