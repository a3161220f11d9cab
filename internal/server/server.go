package server

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"lifecycle/internal/config"
	"lifecycle/internal/domain"
	"lifecycle/internal/usecase"
)

type Server struct {
	cfg    config.Config
	orders *usecase.OrderService
	emails *usecase.EmailService
	log    zerolog.Logger
	gather prometheus.Gatherer
	engine *gin.Engine
}

func New(cfg config.Config, orders *usecase.OrderService, emails *usecase.EmailService, log zerolog.Logger, gather prometheus.Gatherer) *Server {
	s := &Server{
		cfg:    cfg,
		orders: orders,
		emails: emails,
		log:    log,
		gather: gather,
		engine: gin.New(),
	}
	// Route on the escaped path so an address holding "%2F" stays one segment.
	s.engine.UseRawPath = true
	s.engine.Use(gin.Recovery(), s.accessLog)
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")
	api.POST("/orders", s.handleCreateOrder)
	api.GET("/orders", s.handleListOrders)
	api.GET("/orders/:id", s.handleGetOrder)
	api.POST("/orders/:id/capture", s.handleCapture)

	api.POST("/emails", s.handleRegisterEmail)
	api.GET("/emails/:address", s.handleGetEmail)
	api.POST("/emails/:address/verify", s.handleVerifyEmail)
	api.POST("/emails/:address/block", s.handleBlockEmail)

	s.engine.NoRoute(func(c *gin.Context) {
		s.err(c, http.StatusNotFound, "NotFound", "route not found", nil)
	})
}

func (s *Server) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Info().
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Msg("request")
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.err(c, http.StatusBadRequest, "BadRequest", "invalid json", nil)
		return
	}
	pm, err := toPaymentMethod(req.PaymentMethod)
	if err != nil {
		s.fail(c, err)
		return
	}
	var orderedAt time.Time
	if req.OrderedAt != nil {
		orderedAt = *req.OrderedAt
	}
	o, err := s.orders.Create(pm, orderedAt)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResp(o))
}

func (s *Server) handleListOrders(c *gin.Context) {
	page, pageSize := 1, 20
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("pageSize")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}
	orders, total := s.orders.List(page, pageSize)
	items := make([]orderResp, len(orders))
	for i, o := range orders {
		items[i] = toOrderResp(o)
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"page":     page,
		"pageSize": pageSize,
		"total":    total,
	})
}

func (s *Server) handleGetOrder(c *gin.Context) {
	id, err := domain.NewOrderID(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	o, err := s.orders.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(o))
}

func (s *Server) handleCapture(c *gin.Context) {
	var req captureReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		s.err(c, http.StatusBadRequest, "BadRequest", "invalid json", nil)
		return
	}
	id, err := domain.NewOrderID(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	o, err := s.orders.Capture(id, req.TransactionID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(o))
}

func (s *Server) handleRegisterEmail(c *gin.Context) {
	var req registerEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.err(c, http.StatusBadRequest, "BadRequest", "invalid json", nil)
		return
	}
	e, code, err := s.emails.Register(req.Address)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := toEmailResp(e)
	if s.cfg.ExposeCodes {
		resp.Code = code
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleGetEmail(c *gin.Context) {
	e, err := s.emails.Get(c.Param("address"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmailResp(e))
}

func (s *Server) handleVerifyEmail(c *gin.Context) {
	var req verifyEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.err(c, http.StatusBadRequest, "BadRequest", "invalid json", nil)
		return
	}
	v, err := s.emails.Verify(c.Param("address"), req.Code)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmailResp(v))
}

func (s *Server) handleBlockEmail(c *gin.Context) {
	b, err := s.emails.Block(c.Param("address"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmailResp(b))
}

// fail maps service and domain errors onto the error envelope.
func (s *Server) fail(c *gin.Context, err error) {
	var deadline *domain.DeadlineExceededError
	switch {
	case errors.As(err, new(usecase.ErrNotFound)):
		s.err(c, http.StatusNotFound, "NotFound", err.Error(), nil)
	case errors.As(err, new(usecase.ErrConflict)):
		s.err(c, http.StatusConflict, "Conflict", err.Error(), nil)
	case errors.As(err, new(usecase.ErrBadRequest)), errors.Is(err, domain.ErrInvalidFormat):
		s.err(c, http.StatusBadRequest, "BadRequest", err.Error(), nil)
	case errors.As(err, &deadline):
		s.err(c, http.StatusUnprocessableEntity, "DeadlineExceeded", deadline.Error(), gin.H{"deadlineDays": deadline.Days})
	case errors.Is(err, domain.ErrInvalidCode):
		s.err(c, http.StatusUnprocessableEntity, "InvalidCode", domain.ErrInvalidCode.Error(), nil)
	case errors.Is(err, domain.ErrInvalidOperation):
		s.err(c, http.StatusConflict, "InvalidOperation", err.Error(), nil)
	default:
		s.log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		s.err(c, http.StatusInternalServerError, "ServerError", "internal error", nil)
	}
}

func (s *Server) err(c *gin.Context, status int, code, msg string, details gin.H) {
	reqID := c.GetHeader("Idempotency-Key")
	if reqID == "" {
		reqID = c.GetHeader("X-Request-ID")
	}
	body := gin.H{
		"code":      code,
		"message":   msg,
		"requestId": reqID,
	}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}
