package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatedesk/internal/domain"
)

// memUsers is an in-memory UserRepository enforcing the same uniqueness
// the real store's indexes do.
type memUsers struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*domain.User{}} }

func (m *memUsers) CreateOrGet(u *domain.User) (*domain.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.users {
		if u.Phone != nil && ex.Phone != nil && *u.Phone == *ex.Phone {
			return cloneUser(ex), false, nil
		}
		if u.Email != nil && ex.Email != nil && *u.Email == *ex.Email {
			return cloneUser(ex), false, nil
		}
	}
	cp := cloneUser(u)
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.users[cp.ID] = cp
	return cloneUser(cp), true, nil
}

func (m *memUsers) FindByID(id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(email string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Email != nil && *u.Email == email })
}

func (m *memUsers) FindByPhone(phone string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Phone != nil && *u.Phone == phone })
}

func (m *memUsers) FindByName(name string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Name == name })
}

func (m *memUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (m *memUsers) TouchLogin(id, firebaseUID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.FirebaseUID = firebaseUID
		t := at
		u.LastLogin = &t
		u.UpdatedAt = at
	}
	return nil
}

func (m *memUsers) List(offset, limit int) ([]domain.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *cloneUser(u))
	}
	return out, int64(len(out)), nil
}

func (m *memUsers) Update(u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = cloneUser(u)
	return nil
}

func (m *memUsers) SoftDelete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	if u.Email != nil {
		e := *u.Email
		cp.Email = &e
	}
	if u.Phone != nil {
		p := *u.Phone
		cp.Phone = &p
	}
	if u.LastLogin != nil {
		t := *u.LastLogin
		cp.LastLogin = &t
	}
	return &cp
}

func TestReconcileCreatesSellerByDefault(t *testing.T) {
	store := newMemUsers()
	r := NewReconciler(store)

	u, isNew, err := r.Reconcile(context.Background(),
		&Claims{SubjectID: "fb-1", Phone: "+919876543210"}, "")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, string(RoleSeller), u.UserType)
	assert.Equal(t, "+919876543210", u.PhoneValue())
	assert.Equal(t, "User 3210", u.Name)
	assert.Equal(t, "fb-1", u.FirebaseUID)
	require.NotNil(t, u.LastLogin)
}

func TestReconcileUnknownRoleHintFallsBack(t *testing.T) {
	store := newMemUsers()
	r := NewReconciler(store)

	u, _, err := r.Reconcile(context.Background(),
		&Claims{SubjectID: "fb-2", Email: "x@example.com"}, "superadmin")
	require.NoError(t, err)
	assert.Equal(t, string(RoleSeller), u.UserType)

	u2, _, err := r.Reconcile(context.Background(),
		&Claims{SubjectID: "fb-3", Email: "y@example.com"}, "agent")
	require.NoError(t, err)
	assert.Equal(t, string(RoleAgent), u2.UserType)
}

func TestReconcileStaffAdminHintsDowngradeToSeller(t *testing.T) {
	store := newMemUsers()
	r := NewReconciler(store)

	for _, hint := range []string{"admin", "staff"} {
		u, isNew, err := r.Reconcile(context.Background(),
			&Claims{SubjectID: "fb-" + hint, Email: hint + "@example.com"}, hint)
		require.NoError(t, err)
		require.True(t, isNew)
		assert.Equal(t, string(RoleSeller), u.UserType, "hint %q", hint)
		assert.False(t, Role(u.UserType).IsStaff())
	}
}

func TestReconcileEquivalentPhoneFormsMatchOneAccount(t *testing.T) {
	store := newMemUsers()
	r := NewReconciler(store)

	first, isNew, err := r.Reconcile(context.Background(),
		&Claims{SubjectID: "fb-1", Phone: "9876543210"}, "")
	require.NoError(t, err)
	require.True(t, isNew)

	for _, raw := range []string{"+91 98765 43210", "09876543210", "919876543210"} {
		again, isNew, err := r.Reconcile(context.Background(),
			&Claims{SubjectID: "fb-1", Phone: raw}, "")
		require.NoError(t, err)
		assert.False(t, isNew, "form %q must not create", raw)
		assert.Equal(t, first.ID, again.ID)
	}
	assert.Equal(t, 1, store.count())
}

func TestReconcilePhoneWinsOverEmail(t *testing.T) {
	store := newMemUsers()
	r := NewReconciler(store)

	phoneUser, _, err := r.Reconcile(context.Background(),
		&Claims{SubjectID: "fb-p", Phone: "+919876543210"}, "")
	require.NoError(t, err)
	emailUser, _, err := r.Reconcile(context.Background(),
		&Claims{SubjectID: "fb-e", Email: "both@example.com"}, "")
	require.NoError(t, err)
	require.NotEqual(t, phoneUser.ID, emailUser.ID)

	// Claims matching both records resolve to the phone record.
	got, isNew, err := r.Reconcile(context.Background(),
		&Claims{SubjectID: "fb-x", Phone: "9876543210", Email: "both@example.com"}, "")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, phoneUser.ID, got.ID)
}

func TestReconcileNeverOverwritesIdentityFields(t *testing.T) {
	store := newMemUsers()
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r := &Reconciler{Users: store, Now: func() time.Time { return fixed }}

	orig, _, err := r.Reconcile(context.Background(),
		&Claims{SubjectID: "fb-1", Phone: "+919876543210", Email: "a@example.com", Name: "Asha"}, "agent")
	require.NoError(t, err)

	later := fixed.Add(48 * time.Hour)
	r.Now = func() time.Time { return later }
	got, isNew, err := r.Reconcile(context.Background(),
		&Claims{SubjectID: "fb-other", Phone: "+919876543210", Email: "hijack@example.com", Name: "Mallory"}, "admin")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "a@example.com", got.EmailValue())
	assert.Equal(t, string(RoleAgent), got.UserType)

	// Login bookkeeping does move.
	assert.Equal(t, "fb-other", got.FirebaseUID)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.After(fixed))
}

func TestReconcileUnaddressableIdentity(t *testing.T) {
	store := newMemUsers()
	r := NewReconciler(store)

	_, _, err := r.Reconcile(context.Background(), &Claims{SubjectID: "fb-1", Name: "No Contact"}, "")
	assert.ErrorIs(t, err, ErrUnaddressableIdentity)
	assert.Equal(t, 0, store.count())
}

func TestReconcileConcurrentSameIdentityCreatesOne(t *testing.T) {
	store := newMemUsers()
	r := NewReconciler(store)
	claims := &Claims{SubjectID: "fb-1", Phone: "+919876543210"}

	const n = 16
	var wg sync.WaitGroup
	ids := make([]string, n)
	news := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, isNew, err := r.Reconcile(context.Background(), claims, "")
			if assert.NoError(t, err) {
				ids[i] = u.ID
				news[i] = isNew
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, store.count())
	created := 0
	for i := 1; i < n; i++ {
		assert.Equal(t, ids[0], ids[i])
	}
	for _, isNew := range news {
		if isNew {
			created++
		}
	}
	assert.Equal(t, 1, created)
}

func TestReconcileCancelledContext(t *testing.T) {
	store := newMemUsers()
	r := NewReconciler(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := r.Reconcile(ctx, &Claims{SubjectID: "fb-1", Phone: "+919876543210"}, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "Asha", defaultName("Asha", "+919876543210", "a@example.com"))
	assert.Equal(t, "User 3210", defaultName("", "+919876543210", "a@example.com"))
	assert.Equal(t, "a", defaultName("", "", "a@example.com"))
	assert.Equal(t, "user", defaultName("", "", ""))
}
