package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crypto-tracker/middleware"
	"crypto-tracker/portfolio"
	"crypto-tracker/state"
)

// Handler serves the view API over the persisted device state.
type Handler struct {
	state  *state.Manager
	book   portfolio.PriceBook
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

func New(m *state.Manager, book portfolio.PriceBook, secret []byte, sessionTTL time.Duration, log *zap.Logger) *Handler {
	return &Handler{state: m, book: book, secret: secret, ttl: sessionTTL, log: log}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.POST("/session", h.CreateSession)

	auth := router.Group("/")
	auth.Use(middleware.DeviceSession(h.secret))
	{
		auth.GET("/state", h.GetState)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/themes", h.ListThemes)
		auth.PUT("/theme", h.SetTheme)
		auth.PUT("/page", h.SetPage)
		auth.GET("/market", h.GetMarket)
		auth.GET("/view", h.GetView)

		pf := auth.Group("/portfolio")
		pf.Use(h.requireLogin)
		pf.GET("", h.GetPortfolio)
		pf.POST("/holdings", h.AddHolding)
		pf.PUT("/holdings/:index", h.UpdateHolding)
		pf.DELETE("/holdings/:index", h.DeleteHolding)
	}

	return router
}

func (h *Handler) device(c *gin.Context) *state.AppState {
	return h.state.For(c.GetString(middleware.DeviceIDKey))
}

// fail maps err to a status code and aborts the request.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, state.ErrUnknownTheme), errors.Is(err, state.ErrUnknownPage):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, state.ErrHoldingNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error("state backend failure",
			zap.String("path", c.FullPath()),
			zap.String("device", c.GetString(middleware.DeviceIDKey)),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to access stored state"})
	}
}

func (h *Handler) requireLogin(c *gin.Context) {
	ok, err := h.device(c).Authenticated(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}
	c.Next()
}
