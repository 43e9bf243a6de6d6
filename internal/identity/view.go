package identity

import "estatedesk/internal/domain"

// UserView is the redacted account shape returned to clients. It never
// carries password hashes or provider material; staff/admin accounts get
// a human-readable role label for the back-office chrome.
type UserView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	UserType  string `json:"userType"`
	RoleLabel string `json:"roleLabel,omitempty"`
}

func NewUserView(u *domain.User) UserView {
	v := UserView{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.EmailValue(),
		Phone:    u.PhoneValue(),
		UserType: u.UserType,
	}
	if r := Role(u.UserType); r.IsStaff() {
		v.RoleLabel = r.Label()
	}
	return v
}
