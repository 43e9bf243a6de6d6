package router

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	resp "estatedesk/internal/transport/http/response"
	"estatedesk/pkg/utils"
)

var allowedImageExt = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {},
}

// mountUploads handles the multipart image uploads used by banner and
// property forms. Files are stored under dir with generated names; the
// returned paths go into the resource's images/image field.
func mountUploads(admin *gin.RouterGroup, dir string) {
	admin.POST("/uploads", func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, resp.Fail("invalid multipart form: "+err.Error()))
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, resp.Fail("no files uploaded"))
			return
		}

		paths := make([]string, 0, len(files))
		for _, fh := range files {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			if _, ok := allowedImageExt[ext]; !ok {
				c.JSON(http.StatusBadRequest, resp.Fail("unsupported file type: "+ext))
				return
			}
			dst := filepath.Join(dir, utils.NewID()+ext)
			if err := c.SaveUploadedFile(fh, dst); err != nil {
				c.JSON(http.StatusInternalServerError, resp.Fail("save failed"))
				return
			}
			paths = append(paths, dst)
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"paths": paths}))
	})
}
