package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	_ "github.com/Akineyshen/BlogStudentsBUT/docs"
	"github.com/Akineyshen/BlogStudentsBUT/internal/handler"
	"github.com/Akineyshen/BlogStudentsBUT/internal/repository"
	"github.com/Akineyshen/BlogStudentsBUT/internal/security"
	"github.com/Akineyshen/BlogStudentsBUT/internal/service"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title BlogStudentsBUT
// @version 1.0
// @description REST API блога студентов: статьи, профили и личные сообщения

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	cacheTTL := time.Duration(cfg.TTL.S3AndRedis) * time.Second
	sessionTTL := time.Duration(cfg.Session.TTL) * time.Second

	userRepo := repository.NewUserRepository(db)
	jwtRepo := repository.NewJWTRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	tagRepo := repository.NewTagRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient, sessionTTL)
	cacheRepo := repository.NewCacheRepository(redisClient, cacheTTL)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	pdfService := service.NewPDFService()
	articleService := service.NewArticleService(articleRepo, tagRepo, reviewRepo, profileRepo, sessionRepo, cacheRepo, s3Service, pdfService, cacheTTL)
	profileService := service.NewProfileService(profileRepo, skillRepo, s3Service, cacheTTL)
	messageService := service.NewMessageService(messageRepo, profileRepo)

	jwtService := security.NewJWTService(&cfg.JWT)
	userService := service.NewUserService(userRepo, profileRepo, jwtService, jwtRepo)
	authService := service.NewAuthenticationService(jwtRepo, cfg, jwtService, userRepo)

	authHandler := handler.NewAuthenticationHandler(authService, jwtService, jwtRepo, []byte(cfg.JWT.SecretKey))
	userHandler := handler.NewUserHandler(userService)
	articleHandler := handler.NewArticleHandler(articleService)
	profileHandler := handler.NewProfileHandler(profileService)
	messageHandler := handler.NewMessageHandler(messageService)

	router.Use(config.DBMiddleware(db))
	router.Use(security.SessionMiddleware(sessionTTL))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, jwtService, jwtRepo, cfg)
	setupUserRoutes(router, userHandler, jwtService, jwtRepo, cfg)
	setupArticleRoutes(router, articleHandler, jwtService, jwtRepo, cfg)
	setupProfileRoutes(router, profileHandler, messageHandler, articleHandler, jwtService, jwtRepo, cfg)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService, jwtRepo *repository.JWTRepository, cfg *config.AppConfig) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService))
			r.Get("/me", h.GetCurrentUsersUUID)
			r.Head("/me", h.GetCurrentUsersUUID)
			r.Post("/refresh", h.RefreshToken)
		})
		r.Group(func(r chi.Router) {
			r.Post("/", h.Login)
			r.Delete("/{token}", h.Logout)
		})
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, jwtService *security.JWTService, jwtRepo *repository.JWTRepository, cfg *config.AppConfig) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.Register)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService))
			r.Put("/password", h.UpdatePassword)
		})
	})
}

func setupArticleRoutes(r chi.Router, h *handler.ArticleHandler, jwtService *security.JWTService, jwtRepo *repository.JWTRepository, cfg *config.AppConfig) {
	r.Route("/api/articles", func(r chi.Router) {
		r.Get("/", h.ListArticles)
		r.Get("/main", h.ListMain)
		r.With(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService)).Post("/", h.CreateArticle)

		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", h.GetArticle)
			r.Post("/password", h.SubmitPassword)
			r.Get("/pdf", h.ExportPDF)

			r.Group(func(r chi.Router) {
				r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService))
				r.Put("/", h.UpdateArticle)
				r.Delete("/", h.DeleteArticle)
				r.Post("/reviews", h.AddReview)
			})
		})
	})

	r.Route("/api/reviews", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService))
		r.Put("/{uuid}", h.UpdateReview)
		r.Delete("/{uuid}", h.DeleteReview)
	})

	r.Route("/api/tags", func(r chi.Router) {
		r.Get("/", h.ListTags)
		r.Get("/{slug}/articles", h.ListByTag)
	})
}

func setupProfileRoutes(r chi.Router, h *handler.ProfileHandler, mh *handler.MessageHandler, ah *handler.ArticleHandler, jwtService *security.JWTService, jwtRepo *repository.JWTRepository, cfg *config.AppConfig) {
	r.Route("/api/profiles", func(r chi.Router) {
		r.Get("/", h.ListProfiles)
		r.Get("/{uuid}", h.GetProfile)
		r.Post("/{uuid}/messages", mh.SendMessage)
	})

	r.Route("/api/skills", func(r chi.Router) {
		r.Get("/{slug}/profiles", h.ListBySkill)
	})

	r.Route("/api/account", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService))
		r.Get("/", h.GetAccount)
		r.Put("/", h.UpdateAccount)
		r.Post("/skills", h.AddSkill)
		r.Put("/skills/{uuid}", h.UpdateSkill)
		r.Delete("/skills/{uuid}", h.RemoveSkill)
		r.Get("/image-upload", h.ImageUploadURL)
		r.Get("/articles", ah.ListMine)
		r.Get("/inbox", mh.Inbox)
		r.Get("/inbox/{uuid}", mh.ReadMessage)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
