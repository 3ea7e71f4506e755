package routes

import (
	"io"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"fire_tracker/internal/config"
	"fire_tracker/internal/controllers"
	"fire_tracker/internal/crud"
	"fire_tracker/internal/flash"
	"fire_tracker/internal/middleware"
	"fire_tracker/internal/observability"
	"fire_tracker/internal/reports"
	"fire_tracker/internal/urls"
	"fire_tracker/internal/views"
)

// Deps is everything SetupRouter wires together.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Clock     clockwork.Clock
	Metrics   *observability.Metrics
	Gatherer  prometheus.Gatherer
	AccessLog io.Writer
	URLs      *urls.Registry
}

func SetupRouter(d Deps) *gin.Engine {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.URLs == nil {
		d.URLs = urls.NewRegistry()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())
	if d.AccessLog != nil {
		r.Use(ginlog.SetLogger(
			ginlog.WithWriter(d.AccessLog),
			ginlog.WithUTC(true),
			ginlog.WithSkipPath([]string{"/healthz", "/readyz", "/metrics"}),
		))
	}
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.SetHTMLTemplate(views.Templates())

	secret := d.Config.Auth.JWTSecret
	if secret == "" {
		// tokens and flash cookies only need to survive this process
		secret = uuid.Must(uuid.NewV4()).String()
	}
	jwt := middleware.NewJWT(secret, d.Config.Auth.TokenTTL)
	fl := flash.NewStore(secret, d.Config.IsProduction())

	var write []gin.HandlerFunc
	if d.Config.Auth.Required {
		write = append(write, jwt.RequireAuth())
	}

	health := controllers.NewHealthController(d.DB)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	auth := controllers.NewAuthController(d.DB, jwt)
	limiter := middleware.NewIPRateLimiter(d.Config.Auth.LoginRPS, d.Config.Auth.LoginBurst)
	AuthRoutes(r, auth, jwt, limiter)
	AdminRoutes(r, auth, jwt)

	PageRoutes(r, controllers.NewPageController(d.DB, fl), d.URLs)
	ChartRoutes(r, controllers.NewReportController(reports.NewService(d.DB, d.Clock), d.Metrics), d.URLs)
	EntityRoutes(r, crud.Deps{
		DB:       d.DB,
		Flash:    fl,
		Metrics:  d.Metrics,
		URLs:     d.URLs,
		PageSize: d.Config.PageSize,
	}, write...)

	return r
}

func named(reg *urls.Registry, name, path string) string {
	reg.Add(name, path)
	return path
}
