// routes/reservation.go
package routes

import (
	"net/http"

	"checkin-server/services"
	"checkin-server/utils"

	"github.com/kataras/iris/v12"
)

type ReserveInput struct {
	StartDatetime string `json:"start_datetime" validate:"required"`
	EndDatetime   string `json:"end_datetime" validate:"required"`
}

func ReserveApartment(svc *services.ReservationService) iris.Handler {
	return func(ctx iris.Context) {
		var input ReserveInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		start, err := utils.ParseDateTime(input.StartDatetime)
		if err != nil {
			utils.JSONError(ctx, http.StatusBadRequest, string(services.KindValidation), err.Error())
			return
		}
		end, err := utils.ParseDateTime(input.EndDatetime)
		if err != nil {
			utils.JSONError(ctx, http.StatusBadRequest, string(services.KindValidation), err.Error())
			return
		}

		confirmation, err := svc.Reserve(ctx.Request().Context(), ctx.Params().Get("id"), start, end)
		if err != nil {
			respondError(ctx, err)
			return
		}

		ctx.StatusCode(http.StatusCreated)
		ctx.JSON(confirmation)
	}
}

func ListReservations(svc *services.ReservationService) iris.Handler {
	return func(ctx iris.Context) {
		reservations, err := svc.ListReservations(ctx.Request().Context())
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(reservations)
	}
}

func GetReservation(svc *services.ReservationService) iris.Handler {
	return func(ctx iris.Context) {
		reservation, err := svc.GetReservation(ctx.Request().Context(), ctx.Params().Get("id"))
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(reservation)
	}
}
