package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"estatedesk/internal/domain"
	"estatedesk/pkg/utils"
)

// Reconciler maps a verified external identity onto a local user record,
// creating one on first login. The store's unique indexes are the
// authority against double-creation; on an insert conflict the repo
// re-reads and the login is treated as a match.
type Reconciler struct {
	Users domain.UserRepository
	Now   func() time.Time // test seam; defaults to time.Now
}

func NewReconciler(users domain.UserRepository) *Reconciler {
	return &Reconciler{Users: users, Now: time.Now}
}

// Reconcile looks up by canonical phone first, then email, then creates.
// Existing accounts only get login bookkeeping refreshed; name, email,
// phone and role are never overwritten from login claims.
func (r *Reconciler) Reconcile(ctx context.Context, claims *Claims, roleHint string) (*domain.User, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	phone := CanonicalPhone(claims.Phone)
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if phone == "" && email == "" {
		return nil, false, ErrUnaddressableIdentity
	}

	u, err := r.lookup(phone, email)
	if err != nil {
		return nil, false, err
	}
	if u != nil {
		return u, false, r.touch(u, claims.SubjectID)
	}

	now := r.now()
	candidate := &domain.User{
		ID:          utils.NewID(),
		Name:        defaultName(claims.Name, phone, email),
		Email:       domain.NullableStr(email),
		Phone:       domain.NullableStr(phone),
		UserType:    string(ParseSignupRole(roleHint)),
		FirebaseUID: claims.SubjectID,
		LastLogin:   &now,
	}
	created, isNew, err := r.Users.CreateOrGet(candidate)
	if err != nil {
		return nil, false, err
	}
	if !isNew {
		// Lost the insert race; the winner's row is the account.
		return created, false, r.touch(created, claims.SubjectID)
	}
	return created, true, nil
}

func (r *Reconciler) lookup(phone, email string) (*domain.User, error) {
	if phone != "" {
		u, err := r.Users.FindByPhone(phone)
		if err != nil {
			return nil, err
		}
		if u != nil {
			return u, nil
		}
	}
	if email != "" {
		return r.Users.FindByEmail(email)
	}
	return nil, nil
}

func (r *Reconciler) touch(u *domain.User, subjectID string) error {
	now := r.now()
	if err := r.Users.TouchLogin(u.ID, subjectID, now); err != nil {
		return err
	}
	u.FirebaseUID = subjectID
	u.LastLogin = &now
	u.UpdatedAt = now
	return nil
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// defaultName derives a placeholder display name when the claims carry
// none: last four phone digits, else the email local-part.
func defaultName(name, phone, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if phone != "" {
		last := phone
		if len(last) > 4 {
			last = last[len(last)-4:]
		}
		return fmt.Sprintf("User %s", last)
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "user"
}
