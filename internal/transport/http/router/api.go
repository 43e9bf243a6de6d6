package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	coreauth "estatedesk/internal/core/auth"
	"estatedesk/internal/core/cache"
	"estatedesk/internal/core/server"
	mdw "estatedesk/internal/transport/http/middleware"
)

// NewAPIEngine builds the storefront/auth API: public reads, the three
// login paths and /me.
func NewAPIEngine(l *zap.Logger, db *gorm.DB, ch *cache.Cache, jwter *coreauth.JWTer, deps AuthDeps) *gin.Engine {
	r := server.NewRouter(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(15*time.Second),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	MountPublicReads(api, db, ch)

	authed := api.Group("")
	authed.Use(mdw.AuthSession(jwter, ""))

	MountAuthActions(api, authed, db, deps)

	return r
}

func listParams(c *gin.Context) (page, limit, offset int) {
	page = intQuery(c, "page", 1)
	limit = intQuery(c, "limit", 20)
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

func intQuery(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return def
}
