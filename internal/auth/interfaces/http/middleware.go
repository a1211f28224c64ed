package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/auth/application"
	"github.com/wyfcoding/storefront/internal/auth/domain"
	userdomain "github.com/wyfcoding/storefront/internal/user/domain"
	"github.com/wyfcoding/storefront/pkg/response"
)

// SessionContextKey gin 上下文中会话对象的键
const SessionContextKey = "auth_session"

// AuthRequired 校验 Authorization 头中的 Bearer token，通过后把会话放入上下文
func AuthRequired(svc *application.AuthApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "missing authorization token", "UNAUTHORIZED")
			c.Abort()
			return
		}

		session, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid or expired token", "UNAUTHORIZED")
			c.Abort()
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// AdminRequired 在 AuthRequired 之后使用，要求管理员角色
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil || session.Role != userdomain.RoleAdmin {
			response.ErrorWithStatus(c, http.StatusForbidden, "admin privileges required", "FORBIDDEN")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFromContext 取出 AuthRequired 写入的会话；未认证时返回 nil
func SessionFromContext(c *gin.Context) *domain.Session {
	v, ok := c.Get(SessionContextKey)
	if !ok {
		return nil
	}
	session, _ := v.(*domain.Session)
	return session
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
