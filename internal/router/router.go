package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindjournal/mindjournal-backend/config"
	"github.com/mindjournal/mindjournal-backend/internal/app/controller"
	"github.com/mindjournal/mindjournal-backend/internal/middleware"
	"github.com/mindjournal/mindjournal-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one backing service for /health.
type HealthCheck func(ctx context.Context) error

type Router struct {
	authController     *controller.AuthController
	otpController      *controller.OTPController
	activityController *controller.CustomActivityController
	chatController     *controller.ChatController
	metrics            *metrics.Metrics
	healthChecks       map[string]HealthCheck
	config             *config.Config
}

// NewRouter wires the controllers. activityController may be nil when the
// database is disabled; its routes are then not registered.
func NewRouter(
	authController *controller.AuthController,
	otpController *controller.OTPController,
	activityController *controller.CustomActivityController,
	chatController *controller.ChatController,
	m *metrics.Metrics,
	healthChecks map[string]HealthCheck,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		otpController:      otpController,
		activityController: activityController,
		chatController:     chatController,
		metrics:            m,
		healthChecks:       healthChecks,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware(r.metrics))
	router.Use(middleware.CORSMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", r.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.metrics.Registry, promhttp.HandlerOpts{})))

	// OTP endpoints live at the root for the signup page.
	router.POST("/send-otp", r.otpController.SendOTP)
	router.POST("/verify-otp", r.otpController.VerifyOTP)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/verify-token", r.authController.VerifyToken)
			auth.POST("/reset-password", r.authController.ResetPassword)
		}

		if r.activityController != nil {
			activities := api.Group("/custom-activities")
			{
				activities.GET("/:email", r.activityController.List)
				activities.POST("", r.activityController.Add)
				activities.DELETE("", r.activityController.Remove)
			}
		}

		api.POST("/mindbot", r.chatController.MindBot)
	}

	return router
}

func (r *Router) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(r.healthChecks))
	for name, check := range r.healthChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	body := gin.H{
		"status":  "healthy",
		"message": "MindJournal API is running",
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(checks) > 0 {
		body["checks"] = checks
	}
	c.JSON(status, body)
}
