package appointment

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"medsched/infras/otel"
	"medsched/internal/domains/appointment/model/dto"
	"medsched/internal/scheduling"
	"medsched/shared/constant"
	"medsched/shared/validator"
	"medsched/transport/http/response"
)

type Handler struct {
	engine *scheduling.Facade
	otel   otel.Otel
}

func New(engine *scheduling.Facade, otel otel.Otel) Handler {
	return Handler{
		engine: engine,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Post("/{id}/confirm", handler.ConfirmAppointment)
		routerGroup.Post("/{id}/cancel", handler.CancelAppointment)
		routerGroup.Post("/{id}/complete", handler.CompleteAppointment)
	})
}

// CreateAppointment books a new appointment.
// @Summary Book an appointment
// @Description Book an appointment for a patient with a provider in a room.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param appointment body dto.CreateAppointmentRequest true "Appointment details"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Appointment booked"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
func (handler *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	var req dto.CreateAppointmentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.engine.CreateAppointment(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetAppointments lists appointments filtered by participant or activity.
// @Summary Get appointments
// @Description List appointments by patient, by provider, or only the active ones.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param patient query string false "Filter by patient reference"
// @Param provider query string false "Filter by provider reference"
// @Param active query boolean false "Only active appointments"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	query := r.URL.Query()

	var (
		res dto.GetAppointmentsResponse
		err error
	)

	switch {
	case query.Get(constant.RequestParamPatient) != constant.Empty:
		res, err = handler.engine.GetAppointmentsByPatient(ctx, query.Get(constant.RequestParamPatient))
	case query.Get(constant.RequestParamProvider) != constant.Empty:
		res, err = handler.engine.GetAppointmentsByProvider(ctx, query.Get(constant.RequestParamProvider))
	default:
		res, err = handler.engine.GetActiveAppointments(ctx)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAppointmentByID retrieves an appointment by its ID.
// @Summary Get an appointment by ID
// @Description Retrieve an appointment by its unique identifier.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Router /v1/appointments/{id} [get]
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.engine.GetAppointment(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ConfirmAppointment confirms a scheduled appointment.
// @Summary Confirm an appointment
// @Description Move a scheduled appointment to confirmed.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment confirmed"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/{id}/confirm [post]
func (handler *Handler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	handler.transition(w, r, "ConfirmAppointment", handler.engine.ConfirmAppointment)
}

// CancelAppointment cancels an active appointment.
// @Summary Cancel an appointment
// @Description Cancel a scheduled or confirmed appointment.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment cancelled"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/{id}/cancel [post]
func (handler *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	handler.transition(w, r, "CancelAppointment", handler.engine.CancelAppointment)
}

// CompleteAppointment completes a confirmed appointment.
// @Summary Complete an appointment
// @Description Move a confirmed appointment to completed.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment completed"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/{id}/complete [post]
func (handler *Handler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	handler.transition(w, r, "CompleteAppointment", handler.engine.CompleteAppointment)
}

func (handler *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	apply func(ctx context.Context, id string) (dto.AppointmentResponse, error),
) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := apply(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("appointment", id).Msg("failed to transition appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment transitioned successfully")

	response.WithJSON(w, http.StatusOK, res)
}
