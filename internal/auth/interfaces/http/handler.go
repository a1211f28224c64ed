package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/auth/application"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/response"
)

// AuthHandler 认证 HTTP 接口
type AuthHandler struct {
	svc     *application.AuthApplicationService
	metrics *metrics.Metrics
}

func NewAuthHandler(svc *application.AuthApplicationService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: m}
}

// RegisterRoutes 注册认证路由
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", AuthRequired(h.svc), h.Logout)
		auth.GET("/me", AuthRequired(h.svc), h.Me)
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.ErrorWithStatus(c, http.StatusConflict, "email already registered", "EMAIL_TAKEN")
		case errors.Is(err, application.ErrInvalidInput):
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid email or password", "INVALID_REQUEST")
		default:
			response.Error(c, "failed to register")
		}
		return
	}
	response.Created(c, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid email or password", "INVALID_CREDENTIALS")
			return
		}
		response.Error(c, "failed to login")
		return
	}

	h.metrics.ActiveSessionsGauge.Inc()
	response.Success(c, loginResponse{
		Token:     session.Token,
		UserID:    session.UserID,
		Email:     session.Email,
		Role:      string(session.Role),
		ExpiresAt: session.ExpiresAt.Unix(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := SessionFromContext(c)
	if err := h.svc.Logout(c.Request.Context(), session.Token); err != nil {
		response.Error(c, "failed to logout")
		return
	}
	h.metrics.ActiveSessionsGauge.Dec()
	response.Success(c, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, SessionFromContext(c))
}
