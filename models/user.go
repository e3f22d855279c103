package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"gorm.io/gorm"
)

// User is the reviewer/uploader account used for login and audit stamping.
type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;not null;default:'Reviewer'" json:"role"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username string   `json:"username" binding:"required"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password" binding:"required,min=8"`
	Role     UserRole `json:"role"`
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	if err := utils.ValidateUnique[User](ctx, "username", input.Username, 0); err != nil {
		return nil, err
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email address")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = UserRoleReviewer
	}

	db := config.GetDB()
	user := User{
		Username: input.Username,
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     role,
		IsActive: utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil, utils.ErrorDuplicateResource
		}
		return nil, err
	}
	return &user, nil
}

// Active treats a missing flag as active, matching the column default.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// Logout destroys the current session token.
func Logout(ctx context.Context) error {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return errors.New("token is required")
	}
	return config.RemoveRedisKey("Token:" + token)
}

func GetUserByUsername(ctx context.Context, username string) (*User, error) {
	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func GetUserById(ctx context.Context, id int) (*User, error) {
	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Signin verifies credentials and returns a signed JWT.
func Signin(ctx context.Context, username string, password string) (string, *User, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, errors.New("invalid username or password")
	}
	if !user.Active() {
		return "", nil, errors.New("account is inactive")
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return "", nil, errors.New("invalid username or password")
	}

	token, err := utils.JwtGenerate(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
