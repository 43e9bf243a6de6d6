package router

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	coreauth "estatedesk/internal/core/auth"
	"estatedesk/internal/domain"
	"estatedesk/internal/identity"
	httpez "estatedesk/internal/transport/http/ez"
	"estatedesk/pkg/utils"
)

// Reconciler is what the login actions need from identity.Reconciler;
// tests substitute a fake.
type Reconciler interface {
	Reconcile(ctx context.Context, claims *identity.Claims, roleHint string) (*domain.User, bool, error)
}

// AuthDeps wires the auth actions. Verifier and Reconciler are
// interfaces so handler tests run without the provider or a database.
type AuthDeps struct {
	Verifier   identity.TokenVerifier
	Reconciler Reconciler
	Users      domain.UserRepository
	JWT        *coreauth.JWTer
	Log        *zap.Logger
}

type sessionOut struct {
	Token string            `json:"token"`
	User  identity.UserView `json:"user"`
}

// MountAuthActions registers /auth/* on the public group and /me on the
// session-authenticated group.
func MountAuthActions(api, authed *gin.RouterGroup, db *gorm.DB, deps AuthDeps) {
	ezPublic := httpez.New(api)

	mountProviderLogin(ezPublic, db, deps)
	mountRegister(ezPublic, db, deps)
	mountPasswordLogin(ezPublic, db, deps)

	ezAuthed := httpez.New(authed)
	httpez.RegisterAction[struct{}, identity.UserView](ezAuthed, db, httpez.Action[struct{}, identity.UserView]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (identity.UserView, error) {
			u, err := deps.Users.FindByID(c.GetString("userId"))
			if err != nil {
				return identity.UserView{}, httpez.Internal("db error", err)
			}
			if u == nil {
				return identity.UserView{}, httpez.NotFound("user not found")
			}
			return identity.NewUserView(u), nil
		},
	})
}

// POST /auth/login-with-provider-token: verify the provider token,
// reconcile to a local account, issue a session. Specific verification
// failures are logged but collapse to a generic 401 for the client.
func mountProviderLogin(e httpez.EZ, db *gorm.DB, deps AuthDeps) {
	type in struct {
		IDToken  string `json:"idToken"`
		UserType string `json:"userType"`
	}
	httpez.RegisterAction[in, sessionOut](e, db, httpez.Action[in, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/login-with-provider-token",
		Binder: httpez.BindNone, // token may arrive via header with no body
		Handler: func(c *gin.Context, _ *gorm.DB, body *in) (sessionOut, error) {
			_ = c.ShouldBindJSON(body)
			token := strings.TrimSpace(body.IDToken)
			if token == "" {
				if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
					token = strings.TrimPrefix(ah, "Bearer ")
				}
			}
			if token == "" {
				return sessionOut{}, httpez.BadRequest("idToken is required")
			}

			claims, err := deps.Verifier.Verify(c.Request.Context(), token)
			if err != nil {
				deps.Log.Warn("provider token rejected",
					zap.String("rid", c.GetString("rid")), zap.Error(err))
				if errors.Is(err, identity.ErrProviderUnavailable) {
					return sessionOut{}, &httpez.AErr{Status: http.StatusServiceUnavailable, Msg: "identity provider unavailable"}
				}
				return sessionOut{}, httpez.Unauthorized("invalid or expired token")
			}

			user, isNew, err := deps.Reconciler.Reconcile(c.Request.Context(), claims, body.UserType)
			if err != nil {
				if errors.Is(err, identity.ErrUnaddressableIdentity) {
					deps.Log.Warn("unaddressable identity", zap.String("subject", claims.SubjectID))
					return sessionOut{}, httpez.Unauthorized("token carries no usable identity")
				}
				if errors.Is(err, domain.ErrAccountDisabled) {
					deps.Log.Warn("login on disabled account", zap.String("subject", claims.SubjectID))
					return sessionOut{}, httpez.Forbidden("account disabled")
				}
				return sessionOut{}, httpez.Internal("login failed", err)
			}
			if isNew {
				deps.Log.Info("user created from provider login",
					zap.String("userId", user.ID), zap.String("userType", user.UserType))
			}

			tok, err := deps.JWT.Issue(user)
			if err != nil {
				return sessionOut{}, httpez.Internal("issue token failed", err)
			}
			return sessionOut{Token: tok, User: identity.NewUserView(user)}, nil
		},
	})
}

// POST /auth/register: password-based signup. Staff/admin accounts are
// provisioned in the back office, not here.
func mountRegister(e httpez.EZ, db *gorm.DB, deps AuthDeps) {
	type in struct {
		Name     string `json:"name" binding:"required,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
		UserType string `json:"userType" binding:"omitempty,oneof=seller buyer agent"`
	}
	httpez.RegisterAction[in, sessionOut](e, db, httpez.Action[in, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, body *in) (sessionOut, error) {
			phone := identity.CanonicalPhone(body.Phone)
			if digitCount(phone) < 10 {
				return sessionOut{}, httpez.BadRequest("phone must have at least 10 digits")
			}
			email := strings.ToLower(strings.TrimSpace(body.Email))
			userType := body.UserType
			if userType == "" {
				userType = string(identity.RoleSeller)
			}

			u := &domain.User{
				ID:           utils.NewID(),
				Name:         strings.TrimSpace(body.Name),
				Email:        domain.NullableStr(email),
				Phone:        domain.NullableStr(phone),
				PasswordHash: utils.HashPassword(body.Password),
				UserType:     userType,
			}
			_, isNew, err := deps.Users.CreateOrGet(u)
			if err != nil {
				if errors.Is(err, domain.ErrAccountDisabled) {
					return sessionOut{}, httpez.BadRequest("account disabled")
				}
				return sessionOut{}, httpez.Internal("register failed", err)
			}
			if !isNew {
				return sessionOut{}, httpez.BadRequest("email or phone already registered")
			}

			tok, err := deps.JWT.Issue(u)
			if err != nil {
				return sessionOut{}, httpez.Internal("issue token failed", err)
			}
			return sessionOut{Token: tok, User: identity.NewUserView(u)}, nil
		},
	})
}

// POST /auth/login: password login by email, phone or username. The
// session is identical in shape to the provider-token login.
func mountPasswordLogin(e httpez.EZ, db *gorm.DB, deps AuthDeps) {
	type in struct {
		Email    string `json:"email" binding:"omitempty,email"`
		Phone    string `json:"phone"`
		Username string `json:"username"`
		Password string `json:"password" binding:"required"`
	}
	httpez.RegisterAction[in, sessionOut](e, db, httpez.Action[in, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, body *in) (sessionOut, error) {
			var u *domain.User
			var err error
			switch {
			case body.Email != "":
				u, err = deps.Users.FindByEmail(strings.ToLower(strings.TrimSpace(body.Email)))
			case body.Phone != "":
				u, err = deps.Users.FindByPhone(identity.CanonicalPhone(body.Phone))
			case body.Username != "":
				u, err = deps.Users.FindByName(strings.TrimSpace(body.Username))
			default:
				return sessionOut{}, httpez.BadRequest("email, phone or username is required")
			}
			if err != nil {
				return sessionOut{}, httpez.Internal("db error", err)
			}
			if u == nil || !utils.CheckPassword(body.Password, u.PasswordHash) {
				return sessionOut{}, httpez.Unauthorized("invalid credentials")
			}

			tok, err := deps.JWT.Issue(u)
			if err != nil {
				return sessionOut{}, httpez.Internal("issue token failed", err)
			}
			return sessionOut{Token: tok, User: identity.NewUserView(u)}, nil
		},
	})
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
