package ez

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	resp "estatedesk/internal/transport/http/response"
	"estatedesk/pkg/utils"
)

// CrudHooks lets a resource customize the mechanical endpoints without
// leaving the shared registrar.
type CrudHooks[T any] struct {
	BeforeCreate func(c *gin.Context, m *T) error
	BeforeUpdate func(c *gin.Context, m *T) error
	AfterWrite   func(c *gin.Context, m *T) // cache invalidation etc.
	ScopeList    func(c *gin.Context, q *gorm.DB) *gorm.DB
}

// CrudConfig mounts one admin resource as list/get/create/update/delete,
// plus toggle and reorder where the model supports them. Every admin
// screen is the same module with a different T.
type CrudConfig[T any] struct {
	DB    *gorm.DB
	Group *gin.RouterGroup
	Path  string
	New   func() *T

	Hooks CrudHooks[T]

	// Searchable lists column names matched against the `search` query
	// parameter with LIKE.
	Searchable []string
	// ToggleField names a bool column flipped by PATCH :id/toggle
	// (usually "active").
	ToggleField string
	// Sortable adds POST /reorder writing sort_order from id order.
	Sortable bool
	OrderBy  string // defaults to "created_at DESC"

	IDGen func() string
}

func pageParams(c *gin.Context) (page, limit, offset int) {
	page = atoiDefault(c.Query("page"), 1)
	limit = atoiDefault(c.Query("limit"), 20)
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

// Crud wires the standard endpoints for one resource.
func Crud[T any](cfg CrudConfig[T]) {
	if cfg.IDGen == nil {
		cfg.IDGen = utils.NewID
	}
	if cfg.OrderBy == "" {
		cfg.OrderBy = "created_at DESC"
	}
	_ = cfg.DB.AutoMigrate(cfg.New())

	// List: ?page=&limit=&search= with the standard pagination shape.
	cfg.Group.GET(cfg.Path, func(c *gin.Context) {
		page, limit, offset := pageParams(c)

		q := cfg.DB.WithContext(c).Model(cfg.New())
		if s := strings.TrimSpace(c.Query("search")); s != "" && len(cfg.Searchable) > 0 {
			like := "%" + s + "%"
			conds := make([]string, 0, len(cfg.Searchable))
			args := make([]any, 0, len(cfg.Searchable))
			for _, col := range cfg.Searchable {
				conds = append(conds, col+" LIKE ?")
				args = append(args, like)
			}
			q = q.Where(strings.Join(conds, " OR "), args...)
		}
		if cfg.Hooks.ScopeList != nil {
			q = cfg.Hooks.ScopeList(c, q)
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail("count failed"))
			return
		}
		var items []T
		if err := q.Order(cfg.OrderBy).Limit(limit).Offset(offset).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail("list failed"))
			return
		}
		if items == nil {
			items = []T{}
		}
		c.JSON(http.StatusOK, resp.Paginated(items, page, limit, total))
	})

	// Get
	cfg.Group.GET(cfg.Path+"/:id", func(c *gin.Context) {
		m := cfg.New()
		if err := cfg.DB.WithContext(c).First(m, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, resp.Fail("not found"))
			return
		}
		c.JSON(http.StatusOK, resp.OK(m))
	})

	// Create
	cfg.Group.POST(cfg.Path, func(c *gin.Context) {
		m := cfg.New()
		if err := c.ShouldBindJSON(m); err != nil {
			c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
			return
		}
		if id, ok := readStringField(m, idFieldNames); ok && strings.TrimSpace(id) == "" {
			_ = writeStringField(m, idFieldNames, cfg.IDGen())
		}
		if cfg.Hooks.BeforeCreate != nil {
			if err := cfg.Hooks.BeforeCreate(c, m); err != nil {
				c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
				return
			}
		}
		if err := cfg.DB.WithContext(c).Create(m).Error; err != nil {
			c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
			return
		}
		if cfg.Hooks.AfterWrite != nil {
			cfg.Hooks.AfterWrite(c, m)
		}
		c.JSON(http.StatusOK, resp.OK(m))
	})

	// Update
	cfg.Group.PUT(cfg.Path+"/:id", func(c *gin.Context) {
		id := c.Param("id")
		existing := cfg.New()
		if err := cfg.DB.WithContext(c).First(existing, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, resp.Fail("not found"))
			return
		}
		in := cfg.New()
		if err := c.ShouldBindJSON(in); err != nil {
			c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
			return
		}
		_ = writeStringField(in, idFieldNames, id)
		if cfg.Hooks.BeforeUpdate != nil {
			if err := cfg.Hooks.BeforeUpdate(c, in); err != nil {
				c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
				return
			}
		}
		if err := cfg.DB.WithContext(c).Model(cfg.New()).Where("id = ?", id).Updates(in).Error; err != nil {
			c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
			return
		}
		if cfg.Hooks.AfterWrite != nil {
			cfg.Hooks.AfterWrite(c, in)
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
	})

	// Delete (soft)
	cfg.Group.DELETE(cfg.Path+"/:id", func(c *gin.Context) {
		id := c.Param("id")
		res := cfg.DB.WithContext(c).Where("id = ?", id).Delete(cfg.New())
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail(res.Error.Error()))
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, resp.Fail("not found"))
			return
		}
		if cfg.Hooks.AfterWrite != nil {
			cfg.Hooks.AfterWrite(c, cfg.New())
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
	})

	// Toggle active flag
	if cfg.ToggleField != "" {
		col := toSnake(cfg.ToggleField)
		cfg.Group.PATCH(cfg.Path+"/:id/toggle", func(c *gin.Context) {
			id := c.Param("id")
			res := cfg.DB.WithContext(c).Model(cfg.New()).Where("id = ?", id).
				Update(col, gorm.Expr("NOT "+col))
			if res.Error != nil {
				c.JSON(http.StatusInternalServerError, resp.Fail(res.Error.Error()))
				return
			}
			if res.RowsAffected == 0 {
				c.JSON(http.StatusNotFound, resp.Fail("not found"))
				return
			}
			if cfg.Hooks.AfterWrite != nil {
				cfg.Hooks.AfterWrite(c, cfg.New())
			}
			c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
		})
	}

	// Reorder: body {"ids": [...]} rewrites sort_order by position.
	if cfg.Sortable {
		type reorderIn struct {
			IDs []string `json:"ids" binding:"required,min=1"`
		}
		cfg.Group.POST(cfg.Path+"/reorder", func(c *gin.Context) {
			var in reorderIn
			if err := c.ShouldBindJSON(&in); err != nil {
				c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
				return
			}
			err := cfg.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
				for i, id := range in.IDs {
					if err := tx.Model(cfg.New()).Where("id = ?", id).
						Update("sort_order", i).Error; err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, resp.Fail("reorder failed"))
				return
			}
			if cfg.Hooks.AfterWrite != nil {
				cfg.Hooks.AfterWrite(c, cfg.New())
			}
			c.JSON(http.StatusOK, resp.OK(gin.H{"count": len(in.IDs)}))
		})
	}
}

var idFieldNames = []string{"ID", "Id"}

func getStringFieldPtr(obj any, candidates []string) (*string, bool) {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr {
		return nil, false
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		for _, cand := range candidates {
			if f.Name == cand {
				fv := v.Field(i)
				if fv.Kind() == reflect.String && fv.CanSet() {
					return fv.Addr().Interface().(*string), true
				}
			}
		}
	}
	return nil, false
}

func readStringField(obj any, candidates []string) (string, bool) {
	p, ok := getStringFieldPtr(obj, candidates)
	if !ok {
		return "", false
	}
	return *p, true
}

func writeStringField(obj any, candidates []string, val string) bool {
	p, ok := getStringFieldPtr(obj, candidates)
	if !ok {
		return false
	}
	*p = val
	return true
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

func toSnake(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
