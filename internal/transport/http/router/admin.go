package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	coreauth "estatedesk/internal/core/auth"
	"estatedesk/internal/core/cache"
	"estatedesk/internal/domain"
	"estatedesk/internal/identity"
	httpez "estatedesk/internal/transport/http/ez"
	mdw "estatedesk/internal/transport/http/middleware"
)

// AdminOpts collects what the back-office engine needs beyond the DB.
type AdminOpts struct {
	JWT       *coreauth.JWTer
	Cache     *cache.Cache
	Users     domain.UserRepository
	UploadDir string
}

// NewAdminEngine builds the back-office API. Every route requires a
// staff/admin session; user management additionally requires the
// users:manage capability.
func NewAdminEngine(l *zap.Logger, db *gorm.DB, o AdminOpts) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(32<<20),
		mdw.Timeout(15*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthSession(o.JWT, identity.CapBackoffice))

	mountResourceModules(admin, db, o.Cache)
	mountUploads(admin, o.UploadDir)

	usersGrp := admin.Group("")
	usersGrp.Use(mdw.AuthSession(o.JWT, identity.CapManageUsers))
	MountUserAdmin(usersGrp, db, o.Users)

	return r
}

// mountResourceModules registers each admin resource as a mechanical
// CRUD module over the shared registrar.
func mountResourceModules(admin *gin.RouterGroup, db *gorm.DB, ch *cache.Cache) {
	invalidate := func(key string) func(c *gin.Context) {
		return func(c *gin.Context) {
			if ch != nil {
				_ = ch.Invalidate(c.Request.Context(), key)
			}
		}
	}
	bannersDirty := invalidate(cacheKeyBanners)
	settingsDirty := invalidate(cacheKeySettings)

	httpez.Crud(httpez.CrudConfig[domain.Category]{
		DB: db, Group: admin, Path: "/categories",
		New:         func() *domain.Category { return &domain.Category{} },
		Searchable:  []string{"name", "slug"},
		ToggleField: "Active",
		Sortable:    true,
		OrderBy:     "sort_order ASC",
	})

	httpez.Crud(httpez.CrudConfig[domain.Banner]{
		DB: db, Group: admin, Path: "/banners",
		New:         func() *domain.Banner { return &domain.Banner{} },
		Searchable:  []string{"title"},
		ToggleField: "Active",
		Sortable:    true,
		OrderBy:     "sort_order ASC",
		Hooks: httpez.CrudHooks[domain.Banner]{
			AfterWrite: func(c *gin.Context, _ *domain.Banner) { bannersDirty(c) },
		},
	})

	httpez.Crud(httpez.CrudConfig[domain.Property]{
		DB: db, Group: admin, Path: "/properties",
		New:         func() *domain.Property { return &domain.Property{} },
		Searchable:  []string{"title", "city"},
		ToggleField: "Active",
		Hooks: httpez.CrudHooks[domain.Property]{
			ScopeList: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				if st := c.Query("status"); st != "" {
					q = q.Where("status = ?", st)
				}
				if cat := c.Query("category"); cat != "" {
					q = q.Where("category_id = ?", cat)
				}
				return q
			},
		},
	})

	httpez.Crud(httpez.CrudConfig[domain.Notification]{
		DB: db, Group: admin, Path: "/notifications",
		New:        func() *domain.Notification { return &domain.Notification{} },
		Searchable: []string{"title"},
	})

	httpez.Crud(httpez.CrudConfig[domain.Setting]{
		DB: db, Group: admin, Path: "/settings",
		New:        func() *domain.Setting { return &domain.Setting{} },
		Searchable: []string{"key"},
		Hooks: httpez.CrudHooks[domain.Setting]{
			AfterWrite: func(c *gin.Context, _ *domain.Setting) { settingsDirty(c) },
		},
	})

	httpez.Crud(httpez.CrudConfig[domain.CustomField]{
		DB: db, Group: admin, Path: "/custom-fields",
		New:        func() *domain.CustomField { return &domain.CustomField{} },
		Searchable: []string{"label"},
		Sortable:   true,
		OrderBy:    "sort_order ASC",
	})

	httpez.Crud(httpez.CrudConfig[domain.Page]{
		DB: db, Group: admin, Path: "/pages",
		New:         func() *domain.Page { return &domain.Page{} },
		Searchable:  []string{"title", "slug"},
		ToggleField: "Active",
	})

	// Property moderation shortcuts for the review screen.
	ezAdmin := httpez.New(admin)
	type moderateIn struct {
		Status string `json:"status" binding:"required,oneof=approved rejected sold pending"`
	}
	httpez.RegisterAction[moderateIn, gin.H](ezAdmin, db, httpez.Action[moderateIn, gin.H]{
		Method: http.MethodPatch,
		Path:   "/properties/:id/status",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *moderateIn) (gin.H, error) {
			res := tx.Model(&domain.Property{}).Where("id = ?", c.Param("id")).
				Update("status", in.Status)
			if res.Error != nil {
				return nil, httpez.Internal("update failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, httpez.NotFound("property not found")
			}
			return gin.H{"id": c.Param("id"), "status": in.Status}, nil
		},
	})

	// Mark a notification sent. Delivery itself rides on the mobile
	// push pipeline outside this service.
	httpez.RegisterAction[struct{}, gin.H](ezAdmin, db, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/notifications/:id/send",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			res := tx.Model(&domain.Notification{}).
				Where("id = ? AND sent_at IS NULL", c.Param("id")).
				Update("sent_at", time.Now())
			if res.Error != nil {
				return nil, httpez.Internal("send failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, httpez.BadRequest("notification missing or already sent")
			}
			return gin.H{"id": c.Param("id")}, nil
		},
	})
}
