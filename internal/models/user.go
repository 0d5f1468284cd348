package models

import "time"

type Role string

const (
	RoleUser           Role = "USER"
	RoleAdmin          Role = "ADMIN"
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleContentManager Role = "CONTENT_MANAGER"
	RoleModerator      Role = "MODERATOR"
)

var Roles = []Role{RoleUser, RoleAdmin, RoleSuperAdmin, RoleContentManager, RoleModerator}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin, RoleContentManager, RoleModerator:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants admin-or-above access.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	case RoleUser, RoleContentManager, RoleModerator:
		return false
	}
	return false
}

func (r Role) In(roles ...Role) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	Base
	Email     string     `json:"email" gorm:"size:255;not null;uniqueIndex:idx_users_email_live,where:deleted_at IS NULL"`
	Password  string     `json:"-" gorm:"size:255;not null"`
	Name      string     `json:"name" gorm:"size:100;not null"`
	Role      Role       `json:"role" gorm:"size:32;not null;default:USER;index"`
	IsActive  bool       `json:"isActive" gorm:"not null;index"`
	DeletedAt *time.Time `json:"-" gorm:"index"`

	// relations
	Favorites  []Favorite    `json:"favorites,omitempty" gorm:"foreignKey:UserID"`
	Activities []ActivityLog `json:"activities,omitempty" gorm:"foreignKey:UserID"`

	FavoriteCount int64 `json:"favoriteCount,omitempty" gorm:"-"`
	ActivityCount int64 `json:"activityCount,omitempty" gorm:"-"`
}

func (User) TableName() string { return "users" }

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128,strongpassword"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type UserListQuery struct {
	Page     int    `form:"page,default=1" validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
	Search   string `form:"search" validate:"max=100"`
	Role     Role   `form:"role" validate:"omitempty,role"`
	IsActive *bool  `form:"isActive"`
}

type UserStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type UserRoleRequest struct {
	Role Role `json:"role" validate:"required,role"`
}
