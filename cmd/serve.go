package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/sidhant-sriv/rentease-api/config"
	"github.com/sidhant-sriv/rentease-api/db"
	"github.com/sidhant-sriv/rentease-api/mailer"
	"github.com/sidhant-sriv/rentease-api/reports"
	"github.com/sidhant-sriv/rentease-api/repository"
	"github.com/sidhant-sriv/rentease-api/routes"
	"github.com/sidhant-sriv/rentease-api/services"
	"github.com/sidhant-sriv/rentease-api/storage"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	DB, err := db.Connect(cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return err
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.MakeMigration(DB, log); err != nil {
		return err
	}

	deps, closeDeps, err := wire(cfg, DB, log)
	if err != nil {
		return err
	}
	defer closeDeps()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server.started", "addr", srv.Addr, "driver", cfg.Database.Driver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server.stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// wire builds the services and their collaborators. The returned func
// releases external clients.
func wire(cfg config.Config, DB *gorm.DB, log *slog.Logger) (routes.Deps, func(), error) {
	closers := []func() error{}
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	store := repository.NewGormStore(DB)
	tokens := services.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	var sender services.EmailSender = mailer.NewLogSender(log)
	if cfg.SendGrid.APIKey != "" {
		sender = mailer.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, log)
	} else {
		log.Warn("mail.disabled", "reason", "SENDGRID_API_KEY not set")
	}
	notifications := services.NewNotificationService(store, sender, log)

	checks := []routes.HealthCheck{{Name: "database", Check: func(ctx context.Context) error { return db.Ping(ctx, DB) }}}

	var cache reports.Cache
	if cfg.Redis.URL != "" {
		rc, err := storage.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return routes.Deps{}, closeAll, err
		}
		closers = append(closers, rc.Close)
		cache = rc
		checks = append(checks, routes.HealthCheck{Name: "redis", Check: rc.Ping})
	}

	sx, err := db.SQLX(DB)
	if err != nil {
		return routes.Deps{}, closeAll, err
	}

	var uploader routes.ImageUploader = storage.DisabledUploader{}
	if cfg.Cloudinary.Enabled() {
		cu, err := storage.NewCloudinaryUploader(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		if err != nil {
			return routes.Deps{}, closeAll, err
		}
		uploader = cu
	} else {
		log.Warn("upload.disabled", "reason", "cloudinary credentials not set")
	}

	return routes.Deps{
		Users:         services.NewUserService(store, tokens, notifications, log),
		Properties:    services.NewPropertyService(store),
		Bookings:      services.NewBookingService(store, notifications, log),
		Payments:      services.NewPaymentService(store, notifications, log),
		Reviews:       services.NewReviewService(store),
		Favorites:     services.NewFavoriteService(store),
		Notifications: notifications,
		Reports:       reports.New(sx, cache, cfg.Redis.StatsTTL, log),
		Tokens:        tokens,
		Uploader:      uploader,
		Health:        checks,
		Log:           log,
	}, closeAll, nil
}
