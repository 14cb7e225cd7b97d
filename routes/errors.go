package routes

import (
	"errors"

	"checkin-server/services"
	"checkin-server/utils"

	"github.com/kataras/iris/v12"
)

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindNotFound:
		return iris.StatusNotFound
	case services.KindInvalidRange, services.KindValidation:
		return iris.StatusBadRequest
	case services.KindConflict:
		return iris.StatusConflict
	case services.KindUnauthorized:
		return iris.StatusUnauthorized
	case services.KindForbidden:
		return iris.StatusForbidden
	case services.KindUnavailable:
		return iris.StatusServiceUnavailable
	}
	return iris.StatusInternalServerError
}

// respondError writes a service error. Internal details never leave the
// process.
func respondError(ctx iris.Context, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) || svcErr.Kind == services.KindInternal {
		ctx.Application().Logger().Errorf("%s %s: %v", ctx.Method(), ctx.Path(), err)
		utils.JSONError(ctx, iris.StatusInternalServerError, string(services.KindInternal), "internal server error")
		return
	}
	utils.JSONError(ctx, statusFor(svcErr.Kind), string(svcErr.Kind), svcErr.Message)
}
