package routes

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"checkin-server/models"
	"checkin-server/services"
	"checkin-server/utils"

	"github.com/kataras/iris/v12"
)

func CreateApartment(svc *services.ApartmentService) iris.Handler {
	return func(ctx iris.Context) {
		var input services.ApartmentInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		id, err := svc.Create(ctx.Request().Context(), utils.GetPrincipal(ctx), input)
		if err != nil {
			respondError(ctx, err)
			return
		}

		ctx.StatusCode(http.StatusCreated)
		ctx.JSON(iris.Map{"id": id, "message": "apartment created"})
	}
}

func ListApartments(svc *services.ListingService) iris.Handler {
	return func(ctx iris.Context) {
		filter, msg := readListingFilter(ctx)
		if msg != "" {
			utils.JSONError(ctx, http.StatusBadRequest, string(services.KindValidation), msg)
			return
		}

		page, err := svc.List(ctx.Request().Context(), filter)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(page)
	}
}

// readListingFilter parses the listing query string. Empty parameters are
// ignored; a non-numeric page falls back to the first page.
func readListingFilter(ctx iris.Context) (services.ListingFilter, string) {
	filter := services.ListingFilter{Page: ctx.URLParamIntDefault("page", 1)}

	if category := ctx.URLParamTrim("category"); category != "" {
		filter.Category = models.Category(category)
		if !filter.Category.Valid() {
			return filter, "category must be one of: room studio apartment villa"
		}
	}

	for param, dst := range map[string]**float64{"min_price": &filter.MinPrice, "max_price": &filter.MaxPrice} {
		raw := ctx.URLParamTrim(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return filter, param + " must be a number"
		}
		*dst = &v
	}

	for param, dst := range map[string]**time.Time{"start": &filter.Start, "end": &filter.End} {
		raw := ctx.URLParamTrim(param)
		if raw == "" {
			continue
		}
		t, err := utils.ParseDateTime(raw)
		if err != nil {
			return filter, param + ": " + err.Error()
		}
		*dst = &t
	}
	return filter, ""
}

func GetApartment(svc *services.ApartmentService) iris.Handler {
	return func(ctx iris.Context) {
		detail, err := svc.Detail(ctx.Request().Context(), ctx.Params().Get("id"))
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(detail)
	}
}

func UpdateApartment(svc *services.ApartmentService) iris.Handler {
	return func(ctx iris.Context) {
		var patch services.ApartmentPatch
		if err := ctx.ReadJSON(&patch); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		apartment, err := svc.Update(ctx.Request().Context(), utils.GetPrincipal(ctx), ctx.Params().Get("id"), patch)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"id": apartment.ID, "message": "apartment updated"})
	}
}

func DeleteApartment(svc *services.ApartmentService) iris.Handler {
	return func(ctx iris.Context) {
		if err := svc.Delete(ctx.Request().Context(), utils.GetPrincipal(ctx), ctx.Params().Get("id")); err != nil {
			respondError(ctx, err)
			return
		}
		ctx.StatusCode(http.StatusNoContent)
	}
}
