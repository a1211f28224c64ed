package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wyfcoding/storefront/internal/auth/domain"
	userdomain "github.com/wyfcoding/storefront/internal/user/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// AuthApplicationService 认证应用服务：注册、登录、登出与会话校验
type AuthApplicationService struct {
	users     userdomain.UserRepository
	sessions  domain.SessionRepository
	jwtSecret []byte
	ttl       time.Duration
}

func NewAuthApplicationService(users userdomain.UserRepository, sessions domain.SessionRepository, jwtSecret string, ttl time.Duration) *AuthApplicationService {
	return &AuthApplicationService{
		users:     users,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
	}
}

// Register 注册新用户，密码以 bcrypt 存储
func (s *AuthApplicationService) Register(ctx context.Context, email, password, name string) (*userdomain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := userdomain.NewUser(email, string(hash), name, userdomain.RoleCustomer)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "email", email)
	return user, nil
}

// Login 校验凭据，签发 JWT 并持久化会话
func (s *AuthApplicationService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)

	token, err := s.signToken(user, now, expiresAt)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID)
	return session, nil
}

// Logout 删除会话，使 token 立即失效
func (s *AuthApplicationService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Authenticate 校验 token：JWT 签名有效且会话仍存在才算已认证。
// 登出会删除会话，因此已登出的 JWT 即便未过期也会被拒绝。
func (s *AuthApplicationService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired() {
		return nil, ErrUnauthenticated
	}
	return session, nil
}

func (s *AuthApplicationService) signToken(user *userdomain.User, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
