package routes

import (
	"net/http"

	"checkin-server/services"
	"checkin-server/utils"

	"github.com/kataras/iris/v12"
)

func Register(svc *services.AuthService) iris.Handler {
	return func(ctx iris.Context) {
		var input services.RegisterInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		result, err := svc.Register(ctx.Request().Context(), input)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.StatusCode(http.StatusCreated)
		ctx.JSON(result)
	}
}

func Login(svc *services.AuthService) iris.Handler {
	return func(ctx iris.Context) {
		var input services.LoginInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		result, err := svc.Login(ctx.Request().Context(), input)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(result)
	}
}

func RefreshToken(svc *services.AuthService) iris.Handler {
	return func(ctx iris.Context) {
		var input services.RefreshInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		result, err := svc.Refresh(ctx.Request().Context(), input.RefreshToken)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(result)
	}
}

func ListAdmins(svc *services.AuthService) iris.Handler {
	return func(ctx iris.Context) {
		admins, err := svc.ListAdmins(ctx.Request().Context())
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(admins)
	}
}

func GetAdmin(svc *services.AuthService) iris.Handler {
	return func(ctx iris.Context) {
		admin, err := svc.GetAdmin(ctx.Request().Context(), ctx.Params().Get("id"))
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(admin)
	}
}
