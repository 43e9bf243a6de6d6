package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"estatedesk/internal/core/cache"
	"estatedesk/internal/domain"
	resp "estatedesk/internal/transport/http/response"
)

const (
	cacheKeyBanners  = "public:banners:active"
	cacheKeySettings = "public:settings"
	publicCacheTTL   = 5 * time.Minute
)

// MountPublicReads serves the storefront-facing read endpoints. Banner
// and settings reads go through the redis read-through cache; admin
// writes invalidate the keys.
func MountPublicReads(api *gin.RouterGroup, db *gorm.DB, ch *cache.Cache) {
	api.GET("/categories", func(c *gin.Context) {
		var items []domain.Category
		if err := db.WithContext(c).Where("active = ?", true).
			Order("sort_order ASC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail("list failed"))
			return
		}
		c.JSON(http.StatusOK, resp.OK(items))
	})

	api.GET("/banners", func(c *gin.Context) {
		items, err := cache.GetOrLoadJSON(ch, c.Request.Context(), cacheKeyBanners, publicCacheTTL,
			func(ctx context.Context) (*[]domain.Banner, error) {
				var bs []domain.Banner
				err := db.WithContext(ctx).Where("active = ?", true).
					Order("sort_order ASC").Find(&bs).Error
				return &bs, err
			})
		if err != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail("list failed"))
			return
		}
		c.JSON(http.StatusOK, resp.OK(items))
	})

	api.GET("/settings", func(c *gin.Context) {
		kv, err := cache.GetOrLoadJSON(ch, c.Request.Context(), cacheKeySettings, publicCacheTTL,
			func(ctx context.Context) (*map[string]string, error) {
				var rows []domain.Setting
				if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
					return nil, err
				}
				m := make(map[string]string, len(rows))
				for _, s := range rows {
					m[s.Key] = s.Value
				}
				return &m, nil
			})
		if err != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail("settings unavailable"))
			return
		}
		c.JSON(http.StatusOK, resp.OK(kv))
	})

	api.GET("/pages/:slug", func(c *gin.Context) {
		var p domain.Page
		err := db.WithContext(c).Where("slug = ? AND active = ?", c.Param("slug"), true).First(&p).Error
		if err != nil {
			c.JSON(http.StatusNotFound, resp.Fail("page not found"))
			return
		}
		c.JSON(http.StatusOK, resp.OK(p))
	})

	// Approved listings with the standard pagination shape and the
	// storefront filters.
	api.GET("/properties", func(c *gin.Context) {
		page, limit, offset := listParams(c)

		q := db.WithContext(c).Model(&domain.Property{}).
			Where("active = ? AND status = ?", true, "approved")
		if cat := c.Query("category"); cat != "" {
			q = q.Where("category_id = ?", cat)
		}
		if city := c.Query("city"); city != "" {
			q = q.Where("city = ?", city)
		}
		if s := strings.TrimSpace(c.Query("search")); s != "" {
			q = q.Where("title LIKE ?", "%"+s+"%")
		}
		if min := c.Query("minPrice"); min != "" {
			q = q.Where("price >= ?", min)
		}
		if max := c.Query("maxPrice"); max != "" {
			q = q.Where("price <= ?", max)
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail("count failed"))
			return
		}
		var items []domain.Property
		if err := q.Order("featured DESC, created_at DESC").
			Limit(limit).Offset(offset).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, resp.Fail("list failed"))
			return
		}
		if items == nil {
			items = []domain.Property{}
		}
		c.JSON(http.StatusOK, resp.Paginated(items, page, limit, total))
	})
}
