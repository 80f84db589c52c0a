package handler

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"kaspalytics/internal/auth"
	"kaspalytics/internal/domain"
	"kaspalytics/internal/service"
)

type Handler struct {
	tracer          trace.Tracer
	marketService   *service.MarketService
	authService     *auth.Service
	adminUsername   string
	defaultLookback int
	limiter         *TierLimiter
}

func New(tracer trace.Tracer, marketService *service.MarketService, authService *auth.Service, adminUsername string, defaultLookback int) *Handler {
	return &Handler{
		tracer:          tracer,
		marketService:   marketService,
		authService:     authService,
		adminUsername:   adminUsername,
		defaultLookback: defaultLookback,
		limiter:         NewTierLimiter(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/register", h.Register)

	api := r.Group("/api", h.Identity(), h.RateLimit())
	api.GET("/auth/me", h.Me)

	api.GET("/market/series", h.RequireFeature(domain.FeatureBasicCharts), h.GetSeries)
	api.GET("/market/stats", h.RequireFeature(domain.FeatureBasicCharts), h.GetMarketStats)
	api.GET("/market/indicators", h.RequireFeature(domain.FeatureAdvancedCharts), h.GetIndicators)
	api.GET("/market/powerlaw", h.RequireFeature(domain.FeaturePowerLawBasic), h.GetPowerLaw)
	api.GET("/network/metrics", h.RequireFeature(domain.FeatureNetworkMetrics), h.GetNetworkMetrics)
	api.GET("/export", h.RequireFeature(domain.FeatureDataExport), h.Export)

	admin := api.Group("/admin", h.RequireFeature(domain.FeatureAdminPanel))
	admin.GET("/users", h.ListUsers)
	admin.PUT("/users/:username/tier", h.UpdateUserTier)
}
