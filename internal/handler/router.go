package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coupon-service/internal/handler/api"
	"coupon-service/internal/handler/middleware"
	"coupon-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, couponHandler *api.CouponHandler, adminHandler *api.AdminHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, couponHandler, adminHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, couponHandler *api.CouponHandler, adminHandler *api.AdminHandler) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	issueLimiter := middleware.NewRateLimiter(cfg.Server).Middleware()

	apiGroup := engine.Group("/api")
	{
		coupons := apiGroup.Group("/coupons")
		{
			addRoutes(coupons, []route{
				{Method: http.MethodPost, Path: "/issue", Handler: couponHandler.Issue, Mw: []gin.HandlerFunc{issueLimiter}},
				{Method: http.MethodPost, Path: "/issue-requests", Handler: couponHandler.Submit, Mw: []gin.HandlerFunc{issueLimiter}},
				{Method: http.MethodPost, Path: "/use", Handler: couponHandler.Use},
				{Method: http.MethodGet, Path: "/:requester", Handler: couponHandler.Get},
			})
		}

		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/campaigns", Handler: adminHandler.CreateCampaign},
				{Method: http.MethodGet, Path: "/campaigns", Handler: adminHandler.ListCampaigns},
				{Method: http.MethodGet, Path: "/campaigns/:code", Handler: adminHandler.GetCampaign},
				{Method: http.MethodGet, Path: "/topics/:name", Handler: adminHandler.TopicInfo},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
