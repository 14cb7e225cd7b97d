package utils

import (
	"checkin-server/models"
	"checkin-server/services"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

const principalKey = "principal"

// AdminOnlyMiddleware ensures the requester has admin or super_admin role
func AdminOnlyMiddleware(ctx iris.Context) {
	claims, ok := jwt.Get(ctx).(*AccessToken)
	if !ok || claims.ID == "" {
		JSONError(ctx, iris.StatusUnauthorized, string(services.KindUnauthorized), "authentication required")
		return
	}
	if claims.Role != models.RoleAdmin && claims.Role != models.RoleSuperAdmin {
		JSONError(ctx, iris.StatusForbidden, string(services.KindForbidden), "admin access required")
		return
	}
	ctx.Values().Set(principalKey, services.Principal{
		ID:        claims.ID,
		Superuser: claims.Role == models.RoleSuperAdmin,
	})
	ctx.Next()
}

func GetPrincipal(ctx iris.Context) services.Principal {
	principal, _ := ctx.Values().Get(principalKey).(services.Principal)
	return principal
}
