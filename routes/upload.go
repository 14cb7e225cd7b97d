package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"checkin-server/repo"
	"checkin-server/services"
	"checkin-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

const maxImageSize = 10 << 20

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// UploadImage stores the multipart "image" field and answers with its URL.
func UploadImage(images repo.ImageStore) iris.Handler {
	return func(ctx iris.Context) {
		if images == nil {
			utils.JSONError(ctx, http.StatusServiceUnavailable, string(services.KindUnavailable), "image storage is not configured")
			return
		}

		file, header, err := ctx.FormFile("image")
		if err != nil {
			utils.JSONError(ctx, http.StatusBadRequest, string(services.KindValidation), "image file is required")
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !imageExtensions[ext] {
			utils.JSONError(ctx, http.StatusBadRequest, string(services.KindValidation), "image must be a jpg, png or webp file")
			return
		}

		url, err := images.Upload(ctx.Request().Context(), file, uuid.NewString()+ext)
		if err != nil {
			ctx.Application().Logger().Errorf("upload %s: %v", header.Filename, err)
			utils.JSONError(ctx, http.StatusBadGateway, "upload_failed", "upload failed")
			return
		}

		ctx.StatusCode(http.StatusCreated)
		ctx.JSON(iris.Map{"url": url})
	}
}
