package models

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:254;not null;uniqueIndex"`
	Password  string    `gorm:"size:255;not null"`
	Phone     string    `gorm:"size:20"`
	City      string    `gorm:"size:100"`
	Address   string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (u *User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.FirstName + " " + u.LastName
}

// BeforeCreate stores the password as a bcrypt hash. Values that already
// look like a bcrypt hash are kept as is.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if _, err := bcrypt.Cost([]byte(u.Password)); err == nil {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

type UsersRepository struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// ListUsers returns users ordered by newest first. A non-empty search
// matches first name, last name or email, ignoring case.
func (r *UsersRepository) ListUsers(ctx context.Context, search string) ([]User, error) {
	var users []User
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		query = query.Where("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)", pattern, pattern, pattern)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UsersRepository) GetByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UsersRepository) CreateUser(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if mapped := translateUnique(err, map[string]error{"_email": ErrEmailExists}); mapped != err {
		return mapped
	}
	return fmt.Errorf("create user: %w", err)
}
