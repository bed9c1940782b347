package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	authdomain "github.com/fixitworks/fixit/internal/auth/domain"
	"github.com/fixitworks/fixit/internal/auth/token"
	"github.com/fixitworks/fixit/internal/clock"
	"github.com/fixitworks/fixit/internal/config"
	"github.com/fixitworks/fixit/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine  *gin.Engine
	cfg     config.Config
	log     *zap.Logger
	authsvc authdomain.Service
	tokens  *token.Issuer

	// Per-subject limiters for the endpoints that send OTPs.
	smsOTPLimiter   *ratelimit.Limiter
	resetOTPLimiter *ratelimit.Limiter
}

type ServerParams struct {
	fx.In

	Gin     *gin.Engine
	Cfg     config.Config
	Log     *zap.Logger
	Authsvc authdomain.Service
	Tokens  *token.Issuer
	Clock   clock.Clock
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http"),
		authsvc:         p.Authsvc,
		tokens:          p.Tokens,
		smsOTPLimiter:   ratelimit.NewLimiter(5, 10*time.Minute, p.Clock),
		resetOTPLimiter: ratelimit.NewLimiter(5, 10*time.Minute, p.Clock),
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	auth := s.engine.Group("/api/auth")
	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/google", s.GoogleLogin)
	auth.POST("/forgot-password", s.ForgotPassword)
	auth.POST("/new-password", s.NewPassword)
	auth.PUT("/update-profile", s.AuthRequired(), s.UpdateProfile)

	otp := s.engine.Group("/api/otp")
	otp.POST("/send-otp", s.SendOTP)
	otp.POST("/verify-otp", s.VerifyOTP)

	// Locally uploaded avatars are served from disk, mirroring the stored
	// server-relative paths.
	s.engine.Static("/uploads", "./uploads")
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	logger := log.Named("http.access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
