package domain

import (
	"context"
	"time"

	userdomain "github.com/wyfcoding/storefront/internal/user/domain"
)

// Session 认证会话。登录时写入，登出时删除；token 同时作为 JWT 与会话键。
type Session struct {
	Token     string          `json:"token"`
	UserID    uint            `json:"user_id"`
	Email     string          `json:"email"`
	Role      userdomain.Role `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// IsExpired 会话是否已过期
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionRepository 会话仓储接口（仅实现 Redis 版本）
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	// Get 返回 (nil, nil) 表示会话不存在
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
