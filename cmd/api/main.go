package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tourdesk/internal/config"
	"tourdesk/internal/database"
	"tourdesk/internal/middleware"
	"tourdesk/internal/modules/admission"
	"tourdesk/internal/modules/assignment"
	"tourdesk/internal/modules/availability"
	"tourdesk/internal/modules/booking"
	"tourdesk/internal/modules/notify"
	"tourdesk/internal/modules/roster"
	jwtsvc "tourdesk/internal/pkg/jwt"
	"tourdesk/internal/remote"
	"tourdesk/internal/repository"
	"tourdesk/internal/store"
)

// platformStore is the union of the store slices the engine services
// consume; both the remote client and the gorm repositories satisfy it.
type platformStore interface {
	booking.PlatformStore
	assignment.AssignmentStore
	roster.GuideStore
}

func main() {
	_ = godotenv.Load()

	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		log.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	platform, err := buildPlatformStore(cfg, log)
	if err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	session := store.NewSession(cfg.AgencyID)

	hub := notify.NewHub()
	defer hub.Close()
	notifier := notify.NewService(hub, cfg.AgencyID, log)

	availabilityService := availability.NewService(session)
	guard := admission.NewGuard(session)
	assignmentService := assignment.NewService(session, availabilityService, platform, notifier, log)
	bookingService := booking.NewService(session, guard, platform, notifier, log)
	rosterService := roster.NewService(session, platform, notifier, log)

	// Initial snapshot pull. A cold platform store is not fatal: the
	// session starts empty and the operator can refresh.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := bookingService.Refresh(ctx); err != nil {
		log.WithError(err).Warn("initial snapshot refresh failed, starting empty")
	}
	cancel()

	r := gin.New()
	r.Use(gin.Logger(), middleware.CORS(), middleware.ErrorLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ws_online": hub.OnlineCount()})
	})

	v1 := r.Group("/api/v1")
	{
		// the websocket feed authenticates via query token
		notify.NewWSHandler(hub, j, log).RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j, cfg.AgencyID))
		{
			booking.NewHandler(bookingService, session).RegisterRoutes(protected)
			availability.NewHandler(availabilityService).RegisterRoutes(protected)
			assignment.NewHandler(assignmentService).RegisterRoutes(protected)
			roster.NewHandler(rosterService).RegisterRoutes(protected)
		}
	}

	log.WithFields(logrus.Fields{
		"addr":      cfg.ListenAddr,
		"agency_id": cfg.AgencyID,
	}).Info("tourdesk back-office listening")

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

func buildPlatformStore(cfg *config.Config, log *logrus.Logger) (platformStore, error) {
	if cfg.PlatformAPIURL != "" {
		log.WithField("url", cfg.PlatformAPIURL).Info("using platform core API store")
		return remote.NewClient(cfg.PlatformAPIURL, cfg.PlatformAPIToken, cfg.RequestTimeout, log), nil
	}

	log.WithField("dsn", cfg.DatabaseURL).Info("standalone mode, using database store")
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	repo := repository.NewPlatformStore(db)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}
