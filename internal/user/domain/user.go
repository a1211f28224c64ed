package domain

import "gorm.io/gorm"

// Role 用户角色
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	gorm.Model
	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Name         string `gorm:"column:name;type:varchar(100)" json:"name"`
	Phone        string `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Role         Role   `gorm:"column:role;type:varchar(20);not null;default:customer" json:"role"`
}

func (User) TableName() string { return "users" }

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func NewUser(email, passwordHash, name string, role Role) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
	}
}
