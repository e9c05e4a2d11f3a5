package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"contacts_backend/internal/app/config"
	"contacts_backend/internal/app/router"
	authadapters "contacts_backend/internal/feature/auth/adapters"
	authhandler "contacts_backend/internal/feature/auth/transport/handler"
	authusecase "contacts_backend/internal/feature/auth/usecase"
	contactadapters "contacts_backend/internal/feature/contacts/adapters"
	contacthandler "contacts_backend/internal/feature/contacts/transport/handler"
	contactusecase "contacts_backend/internal/feature/contacts/usecase"
	"contacts_backend/internal/platform/cache"
	platformdb "contacts_backend/internal/platform/db"
	platformjwt "contacts_backend/internal/platform/jwt"
	"contacts_backend/internal/platform/mail"
	platformredis "contacts_backend/internal/platform/redis"
	"contacts_backend/internal/platform/task"
	"contacts_backend/internal/platform/upload"
)

func main() {
	// A missing .env is fine outside development.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	db, err := platformdb.Open(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Redis is optional. Without it user lookups go straight to MySQL.
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := platformredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			slog.Warn("redis unavailable, running without cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	var userRepo authusecase.UserRepository = authadapters.NewUserMySQL(db)
	userRepo = cache.NewCachingUserRepository(rdb, 5*time.Minute, userRepo, "users")
	contactRepo := contactadapters.NewContactMySQL(db)

	// Platform services
	codec := platformjwt.NewCodec(cfg.JWT.Secret)
	mailer := mail.NewMailer(cfg.SMTP, cfg.BaseURL)
	uploader, err := upload.NewS3Uploader(context.Background(), cfg.S3)
	if err != nil {
		slog.Error("failed to configure avatar storage", "error", err)
		os.Exit(1)
	}
	dispatcher := task.NewDispatcher(time.Minute)
	defer dispatcher.Wait()

	// Usecase
	accountUC := authusecase.NewAccountUsecase(
		userRepo,
		authusecase.NewBcryptHasher(0),
		codec,
		mailer,
		uploader,
		dispatcher,
		cfg.JWT.AccessTTL,
		cfg.JWT.ConfirmTTL,
	)
	contactUC := contactusecase.NewContactUsecase(contactRepo)

	// Handler
	authH := authhandler.NewAuthHandler(accountUC)
	contactH := contacthandler.NewContactHandler(contactUC)

	r := router.NewRouter(authH, contactH, accountUC)

	if err := r.Run(cfg.Addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
