package repo

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"estatedesk/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// CreateOrGet inserts u. When the insert trips a phone/email unique
// index (a concurrent first login), the existing row is re-read and
// returned instead. The index is the authority, not read-then-write.
// The re-read is unscoped: a soft-deleted row still occupies the index,
// and a conflict with one is reported as a disabled account rather than
// leaking the raw duplicate-key error.
func (r *UserRepo) CreateOrGet(u *domain.User) (*domain.User, bool, error) {
	err := r.db.Create(u).Error
	if err == nil {
		return u, true, nil
	}
	if !isDupKey(err) {
		return nil, false, err
	}
	if u.Phone != nil {
		existing, e := r.findOneUnscoped("phone = ?", *u.Phone)
		if e != nil {
			return nil, false, e
		}
		if existing != nil {
			return liveOrDisabled(existing)
		}
	}
	if u.Email != nil {
		existing, e := r.findOneUnscoped("email = ?", *u.Email)
		if e != nil {
			return nil, false, e
		}
		if existing != nil {
			return liveOrDisabled(existing)
		}
	}
	return nil, false, err
}

func liveOrDisabled(u *domain.User) (*domain.User, bool, error) {
	if u.DeletedAt.Valid {
		return nil, false, domain.ErrAccountDisabled
	}
	return u, false, nil
}

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	return r.findOne("id = ?", id)
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	return r.findOne("email = ?", email)
}

func (r *UserRepo) FindByPhone(phone string) (*domain.User, error) {
	return r.findOne("phone = ?", phone)
}

func (r *UserRepo) FindByName(name string) (*domain.User, error) {
	return r.findOne("name = ?", name)
}

func (r *UserRepo) findOne(query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) findOneUnscoped(query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.Unscoped().First(&u, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) TouchLogin(id, firebaseUID string, at time.Time) error {
	return r.db.Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"firebase_uid": firebaseUID,
		"last_login":   at,
		"updated_at":   at,
	}).Error
}

func (r *UserRepo) List(offset, limit int) ([]domain.User, int64, error) {
	var users []domain.User
	tx := r.db.Model(&domain.User{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := tx.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) Update(u *domain.User) error { return r.db.Save(u).Error }

func (r *UserRepo) SoftDelete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.User{}).Error
}

// isDupKey avoids depending on driver-specific error types; both mysql
// and postgres surface unique violations with these phrasings.
func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
