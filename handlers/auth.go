package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"crypto-tracker/market"
	"crypto-tracker/middleware"
)

// CreateSession mints a token for a new device. All persisted state is
// scoped to that device.
func (h *Handler) CreateSession(c *gin.Context) {
	deviceID := uuid.NewString()
	claims := jwt.MapClaims{
		middleware.DeviceIDKey: deviceID,
		"exp":                  time.Now().Add(h.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		h.log.Error("sign session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "device_id": deviceID})
}

func (h *Handler) GetState(c *gin.Context) {
	snap, err := h.device(c).Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Login flips the authentication flag on. No credentials are checked.
func (h *Handler) Login(c *gin.Context) {
	if err := h.device(c).Login(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.device(c).Logout(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

func (h *Handler) ListThemes(c *gin.Context) {
	c.JSON(http.StatusOK, market.Themes())
}

type ThemeInput struct {
	Theme string `json:"theme" binding:"required"`
}

func (h *Handler) SetTheme(c *gin.Context) {
	var input ThemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	theme, err := h.device(c).SetTheme(c.Request.Context(), input.Theme)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

type PageInput struct {
	Page string `json:"page" binding:"required"`
}

func (h *Handler) SetPage(c *gin.Context) {
	var input PageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.device(c).SetPage(c.Request.Context(), input.Page); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": input.Page})
}
