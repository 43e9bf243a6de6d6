package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrAccountDisabled marks a phone/email that belongs to a soft-deleted
// (banned) account. Such identities can neither register again nor log
// in until the back office restores them.
var ErrAccountDisabled = errors.New("domain: account disabled")

// User is addressable by phone OR email; at least one is present at
// creation time. Phone is stored in canonical international form.
// Email/Phone are pointers so absent values persist as NULL and the
// unique indexes only bite on real values.
type User struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Name         string         `gorm:"size:64" json:"name"`
	Email        *string        `gorm:"uniqueIndex;size:191" json:"email"`
	Phone        *string        `gorm:"uniqueIndex;size:20" json:"phone"`
	PasswordHash string         `gorm:"size:191" json:"-"`
	UserType     string         `gorm:"size:16;default:seller" json:"userType"` // seller/buyer/agent/admin/staff
	FirebaseUID  string         `gorm:"size:128;index" json:"-"`
	LastLogin    *time.Time     `json:"lastLogin,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

func (u *User) PhoneValue() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}

// NullableStr maps "" to NULL for the optional unique columns.
func NullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type UserRepository interface {
	// CreateOrGet inserts u; on a phone/email unique-key conflict it
	// re-reads the existing row and returns it with created=false.
	CreateOrGet(u *User) (*User, bool, error)
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByPhone(phone string) (*User, error)
	FindByName(name string) (*User, error)
	// TouchLogin refreshes firebase_uid, last_login and updated_at only.
	TouchLogin(id, firebaseUID string, at time.Time) error
	List(offset, limit int) ([]User, int64, error)
	Update(u *User) error
	SoftDelete(id string) error
}
