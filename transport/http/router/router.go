package router

import (
	"github.com/go-chi/chi/v5"

	"medsched/internal/handlers/appointment"
	"medsched/internal/handlers/report"
	"medsched/internal/handlers/room"
)

type DomainHandlers struct {
	Room        room.Handler
	Appointment appointment.Handler
	Report      report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
