package domain

import "context"

type UserRepository interface {
	Save(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
	Delete(ctx context.Context, id uint) error
}
