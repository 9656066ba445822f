package models

import (
	"crypto/rand"
	"time"

	"gorm.io/gorm"
)

// Sex is the optional sex recorded in a user's settings.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// Supported display currencies.
var SupportedCurrencies = []string{"GBP", "USD", "EUR"}

const userCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// User represents the user model in the database
type User struct {
	Base
	UserCode            string     `gorm:"size:20;uniqueIndex;not null" json:"user_code"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `json:"-"`
	FirstName           string     `gorm:"size:100" json:"first_name"`
	LastName            string     `gorm:"size:100" json:"last_name"`
	Sex                 *Sex       `gorm:"size:6" json:"sex"`
	DOB                 *Date      `json:"dob"`
	Currency            *string    `gorm:"size:3" json:"currency"`
	IsGuest             bool       `gorm:"default:false" json:"is_guest"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
}

// BeforeCreate assigns the primary key and the public ID-XXXXXXXX code.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if err := u.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if u.UserCode == "" {
		code, err := newUserCode()
		if err != nil {
			return err
		}
		u.UserCode = code
	}
	return nil
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func newUserCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = userCodeAlphabet[int(b)%len(userCodeAlphabet)]
	}
	return "ID-" + string(buf), nil
}
