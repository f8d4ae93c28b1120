package model

import (
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated back-office user. Identity and the
// role claim are all the workflows need; full user administration
// lives in the upstream auth service.
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName string `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	Role     string `gorm:"type:varchar(30);default:'STAFF'" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
