package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"estatedesk/internal/domain"
	"estatedesk/internal/identity"
	httpez "estatedesk/internal/transport/http/ez"
	resp "estatedesk/internal/transport/http/response"
)

// MountUserAdmin registers the account-management screen's endpoints.
// The group is already gated on the users:manage capability.
func MountUserAdmin(grp *gin.RouterGroup, db *gorm.DB, users domain.UserRepository) {
	ez := httpez.New(grp)

	// GET /users?page=&limit=&search=&userType=
	grp.GET("/users", func(c *gin.Context) {
		page, limit, offset := listParams(c)

		q := db.WithContext(c).Model(&domain.User{})
		if s := strings.TrimSpace(c.Query("search")); s != "" {
			like := "%" + s + "%"
			q = q.Where("email LIKE ? OR phone LIKE ? OR name LIKE ?", like, like, like)
		}
		if ut := c.Query("userType"); ut != "" {
			q = q.Where("user_type = ?", ut)
		}
		if c.Query("withDeleted") == "true" {
			q = q.Unscoped()
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail("count users failed"))
			return
		}
		var us []domain.User
		if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&us).Error; err != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail("list users failed"))
			return
		}
		views := make([]identity.UserView, 0, len(us))
		for i := range us {
			views = append(views, identity.NewUserView(&us[i]))
		}
		c.JSON(http.StatusOK, resp.Paginated(views, page, limit, total))
	})

	// PATCH /users/:id/role is the only path that grants staff/admin.
	type roleIn struct {
		UserType string `json:"userType" binding:"required"`
	}
	httpez.RegisterAction[roleIn, gin.H](ez, db, httpez.Action[roleIn, gin.H]{
		Method: http.MethodPatch,
		Path:   "/users/:id/role",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *roleIn) (gin.H, error) {
			if !identity.Role(in.UserType).Valid() {
				return nil, httpez.BadRequest("unknown user type")
			}
			res := tx.Model(&domain.User{}).Where("id = ?", c.Param("id")).
				Update("user_type", in.UserType)
			if res.Error != nil {
				return nil, httpez.Internal("role change failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, httpez.NotFound("user not found")
			}
			return gin.H{"id": c.Param("id"), "userType": in.UserType}, nil
		},
	})

	// POST /users/:id/ban soft deletes the account.
	httpez.RegisterAction[struct{}, gin.H](ez, db, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing id")
			}
			if err := users.SoftDelete(id); err != nil {
				return nil, httpez.Internal("ban user failed", err)
			}
			return gin.H{"id": id}, nil
		},
	})
}
