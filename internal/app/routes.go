package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("tripwise-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Put("/users/activated", app.ActivateUser)
	r.Post("/login", app.Login)
	r.Post("/logout", app.Logout)
	r.Post("/password-reset", app.InitiatePasswordReset)
	r.Put("/password", app.CompletePasswordReset)

	r.Get("/accommodations", app.GetAccommodations)
	r.Get("/accommodations/{accommodationId}", app.GetAccommodationById)

	r.Post("/bookings/quote", app.QuoteBooking)

	r.With(app.requireAuthentication).Group(func(r chi.Router) {
		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", app.GetCurrentUser)
			r.Patch("/", app.UpdateUser)
		})

		r.Route("/users/me/bookings", func(r chi.Router) {
			r.Get("/", app.GetBookingsOfUser)
			r.Get("/{bookingId}", app.GetUserBookingById)
		})

		r.Post("/bookings", app.CreateBooking)
	})

	r.With(app.requireAuthentication, app.requireAdmin).Route("/admin", func(r chi.Router) {
		r.Get("/users", app.GetUsers)
		r.Get("/bookings", app.GetBookings)

		r.Route("/accommodations", func(r chi.Router) {
			r.Post("/", app.CreateAccommodation)

			r.Route("/{accommodationId}", func(r chi.Router) {
				r.Patch("/", app.UpdateAccommodation)
				r.Delete("/", app.DeleteAccommodation)

				r.Route("/room-types", func(r chi.Router) {
					r.Post("/", app.CreateRoomType)
					r.Patch("/{roomTypeId}", app.UpdateRoomType)
					r.Delete("/{roomTypeId}", app.DeleteRoomType)
				})

				r.Route("/extras", func(r chi.Router) {
					r.Post("/", app.CreateOptionalExtra)
					r.Patch("/{extraId}", app.UpdateOptionalExtra)
					r.Delete("/{extraId}", app.DeleteOptionalExtra)
				})
			})
		})
	})

	r.Post("/webhook", app.StripeWebhookHandler)

	return r
}
