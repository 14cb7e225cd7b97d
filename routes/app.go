package routes

import (
	"checkin-server/repo"
	"checkin-server/services"
	"checkin-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/logger"
	"github.com/kataras/iris/v12/middleware/recover"
)

// Deps is everything the HTTP layer needs. Images may be nil, which turns
// the upload endpoint off.
type Deps struct {
	Apartments   *services.ApartmentService
	Listing      *services.ListingService
	Reservations *services.ReservationService
	Auth         *services.AuthService
	Tokens       *utils.Tokens
	Images       repo.ImageStore
	LogLevel     string
}

func NewApp(deps Deps) *iris.Application {
	app := iris.New()
	if deps.LogLevel != "" {
		app.Logger().SetLevel(deps.LogLevel)
	}
	app.Configure(iris.WithoutPathCorrectionRedirection)
	app.Validator = utils.NewValidator()
	app.UseRouter(recover.New())
	app.Use(logger.New())

	accessTokenVerifierMiddleware := deps.Tokens.AccessMiddleware()
	adminOnly := []iris.Handler{accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware}

	auth := app.Party("/api/auth")
	{
		auth.Post("/register", Register(deps.Auth))
		auth.Post("/login", Login(deps.Auth))
		auth.Post("/refresh", RefreshToken(deps.Auth))

		admins := auth.Party("/admins", adminOnly...)
		admins.Get("/", ListAdmins(deps.Auth))
		admins.Get("/{id}", GetAdmin(deps.Auth))
	}

	apartments := app.Party("/api/apartments")
	{
		apartments.Get("/", ListApartments(deps.Listing))
		apartments.Get("/reservations", ListReservations(deps.Reservations))
		apartments.Get("/reservations/{id}", GetReservation(deps.Reservations))
		apartments.Get("/{id}", GetApartment(deps.Apartments))
		apartments.Post("/{id}/reserve", ReserveApartment(deps.Reservations))

		apartments.Post("/create", append(adminOnly, CreateApartment(deps.Apartments))...)
		apartments.Put("/{id}/update", append(adminOnly, UpdateApartment(deps.Apartments))...)
		apartments.Patch("/{id}/update", append(adminOnly, UpdateApartment(deps.Apartments))...)
		apartments.Delete("/{id}/delete", append(adminOnly, DeleteApartment(deps.Apartments))...)
		apartments.Post("/upload", append(adminOnly,
			iris.LimitRequestBodySize(maxImageSize+1<<20),
			UploadImage(deps.Images))...)
	}

	return app
}
