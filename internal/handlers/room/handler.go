package room

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"medsched/infras/otel"
	"medsched/internal/domains/room/model/dto"
	"medsched/internal/scheduling"
	"medsched/shared"
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
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Post("/{id}/schedule", handler.ScheduleRoom)
		routerGroup.Post("/{id}/release", handler.ReleaseRoom)
		routerGroup.Post("/{id}/equipment", handler.AddEquipment)
	})
}

// CreateRoom registers a new room.
// @Summary Create a new room
// @Description Register a room with its capacity and category.
// @Tags Room
// @Accept json
// @Produce json
// @Param room body dto.CreateRoomRequest true "Room details"
// @Success 201 {object} response.Message "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	var req dto.CreateRoomRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.engine.CreateRoom(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithMessage(w, http.StatusCreated, "Room created successfully")
}

// GetRooms lists registered rooms.
// @Summary Get all rooms
// @Description List every room, optionally only the available ones.
// @Tags Room
// @Accept json
// @Produce json
// @Param available query boolean false "Only available rooms"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	availableOnly := false
	if v := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamAvailable)); v != nil {
		availableOnly = *v
	}

	rooms, err := handler.engine.GetRooms(ctx, availableOnly)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Description Retrieve a room by its unique identifier.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.engine.GetRoom(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// ScheduleRoom marks a room occupied for a slot.
// @Summary Schedule a room
// @Description Mark an available room occupied for the given time.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param slot body dto.ScheduleRoomRequest true "Slot time"
// @Success 200 {object} response.Message "Room scheduled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms/{id}/schedule [post]
func (handler *Handler) ScheduleRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ScheduleRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.ScheduleRoomRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	at, err := req.ToTime()
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse slot time")

		response.WithError(w, err)

		return
	}

	if err := handler.engine.ScheduleRoom(ctx, id, at); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to schedule room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room scheduled successfully")

	response.WithMessage(w, http.StatusOK, "Room scheduled successfully")
}

// ReleaseRoom makes an occupied room available again.
// @Summary Release a room
// @Description Clear a room's booking and mark it available.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room released successfully"
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/release [post]
func (handler *Handler) ReleaseRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleaseRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.engine.ReleaseRoom(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room released successfully")

	response.WithMessage(w, http.StatusOK, "Room released successfully")
}

// AddEquipment appends an equipment item to a room.
// @Summary Add equipment to a room
// @Description Append one equipment item to the room's inventory.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param equipment body dto.AddEquipmentRequest true "Equipment item"
// @Success 200 {object} response.Message "Equipment added successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/equipment [post]
func (handler *Handler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddEquipment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.AddEquipmentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.engine.AddRoomEquipment(ctx, id, req.Item); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add equipment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment added successfully")

	response.WithMessage(w, http.StatusOK, "Equipment added successfully")
}
