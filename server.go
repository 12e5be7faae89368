package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"email-campaign/config"
	"email-campaign/logger"
	"email-campaign/metrics"
	"email-campaign/models"
	"email-campaign/service"
	"email-campaign/utils"
)

const (
	serviceName    = "email-campaign"
	serviceVersion = "1.0.0"
)

type Server struct {
	router    *gin.Engine
	config    *config.Config
	log       *logger.Logger
	metrics   *metrics.Metrics
	campaigns *service.CampaignService
	drafts    *service.DraftService
	server    *http.Server
}

func NewServer(cfg *config.Config, log *logger.Logger, model llms.Model) *Server {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	s := &Server{
		router:    router,
		config:    cfg,
		log:       log,
		metrics:   metrics.New(),
		campaigns: service.NewCampaignService(log),
		drafts:    service.NewDraftService(model, log),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
	s.router.Use(s.metrics.Middleware())

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", s.metrics.Handler())

	api := s.router.Group("/api")
	api.POST("/generate-email", s.generateEmail)
	api.POST("/send", s.sendCampaign)

	s.router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Message: "Method Not Allowed"})
	})
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Not Found"})
	})
}

// requestLogger tags each request with an ID and logs it once finished.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("logger", s.log.WithRequestID(requestID))

		c.Next()

		s.log.WithRequestID(requestID).HTTPRequest(
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			utils.GetClientIP(c.Request),
		)
	}
}

func (s *Server) requestLog(c *gin.Context) *logger.Logger {
	if l, ok := c.Get("logger"); ok {
		if log, ok := l.(*logger.Logger); ok {
			return log
		}
	}
	return s.log
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      serviceName,
		"version":      serviceVersion,
		"environment":  s.config.App.Env,
		"llm_provider": s.config.LLM.Provider,
	})
}

func (s *Server) generateEmail(c *gin.Context) {
	var req models.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.RecordDraft("invalid")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Prompt is required."})
		return
	}

	draft, err := s.drafts.GenerateDraft(c.Request.Context(), req.Prompt)
	if err != nil {
		var parseErr *service.ParseError
		switch {
		case errors.Is(err, service.ErrEmptyPrompt):
			s.metrics.RecordDraft("invalid")
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Prompt is required."})
		case errors.As(err, &parseErr):
			s.metrics.RecordDraft("parse_error")
			s.requestLog(c).Error().Err(err).Msg("JSON parsing error")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Message:      "Failed to parse AI-generated content. Please try again.",
				ErrorDetails: parseErr.Detail,
			})
		default:
			s.metrics.RecordDraft("model_error")
			s.requestLog(c).Error().Err(err).Msg("text model error")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Message: "Failed to generate email content.",
				Error:   err.Error(),
			})
		}
		return
	}

	s.metrics.RecordDraft("ok")
	c.JSON(http.StatusOK, draft)
}

func (s *Server) sendCampaign(c *gin.Context) {
	var req models.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.requestLog(c).Debug().Err(err).Msg("rejected campaign request")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Missing required campaign data."})
		return
	}

	resp, err := s.campaigns.SimulateSend(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Missing required campaign data."})
		return
	}

	s.metrics.RecordCampaign(resp.Metrics.SentCount, resp.Metrics.FailedCount, resp.Metrics.OpensCount)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) Start() error {
	addr := s.config.ListenAddr()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info().
		Str("addr", addr).
		Str("environment", s.config.App.Env).
		Str("llm_provider", s.config.LLM.Provider).
		Msg("server starting")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
