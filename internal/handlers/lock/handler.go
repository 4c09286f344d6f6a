package lock

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"

	"atrium/infras/otel"
	"atrium/internal/domains/lock/model/dto"
	"atrium/internal/domains/lock/service"
	"atrium/shared/constant"
	"atrium/shared/validator"
	"atrium/transport/http/response"
)

type Handler struct {
	service service.Lock
	otel    otel.Otel
}

func New(service service.Lock, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/locks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AcquireLock)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/mine", handler.GetMyLocks)
		routerGroup.Post("/{id}/extend", handler.ExtendLock)
		routerGroup.Post("/{id}/confirm", handler.ConfirmLock)
		routerGroup.Delete("/{id}", handler.ReleaseLock)
		routerGroup.Delete("/sessions/{sessionId}", handler.ReleaseSession)
	})
}

// AcquireLock places a hold on a venue time window.
// @Summary Acquire a venue lock
// @Description Place a temporary or draft hold on a venue for the requested time window. Fails with 409 when the window overlaps an active hold or confirmed reservation.
// @Tags Lock
// @Accept json
// @Produce json
// @Param request body dto.AcquireLockRequest true "Acquire Lock Request"
// @Success 201 {object} response.Data[dto.LockResponse] "Lock acquired successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locks [post]
// @Security BearerAuth
func (handler *Handler) AcquireLock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcquireLock")
	defer scope.End()

	req := dto.AcquireLockRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	lock, err := handler.service.Acquire(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to acquire lock")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Lock acquired successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, lock)
}

// CheckAvailability reports whether a venue time window is free.
// @Summary Check venue availability
// @Description Check whether the requested venue time window is free of active holds and confirmed reservations. Advisory only; acquiring the lock is what reserves the window.
// @Tags Lock
// @Accept json
// @Produce json
// @Param venue_id query string true "Venue ID"
// @Param event_date query string true "Event date (YYYY-MM-DD)"
// @Param start_time query string true "Start time (HH:MM)"
// @Param end_time query string true "End time (HH:MM)"
// @Param exclude_lock_id query string false "Lock ID to exclude from the overlap check"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locks/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := r.URL.Query()

	req := dto.AvailabilityRequest{
		VenueID:       query.Get("venue_id"),
		EventDate:     query.Get("event_date"),
		StartTime:     query.Get("start_time"),
		EndTime:       query.Get("end_time"),
		ExcludeLockID: query.Get("exclude_lock_id"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	availability, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability checked successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// GetMyLocks lists the caller's active locks.
// @Summary Get my locks
// @Description List the authenticated user's active locks, optionally narrowed to one booking session.
// @Tags Lock
// @Accept json
// @Produce json
// @Param session_id query string false "Filter by booking session ID"
// @Success 200 {object} response.Data[dto.GetLocksResponse] "List of active locks"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locks/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyLocks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyLocks")
	defer scope.End()

	sessionID := r.URL.Query().Get("session_id")

	locks, err := handler.service.ListMine(ctx, sessionID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get locks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Locks retrieved successfully")

	response.WithJSON(w, http.StatusOK, locks)
}

// ExtendLock pushes a hold's expiry further into the future.
// @Summary Extend a lock
// @Description Extend an unexpired hold by the requested number of minutes. A hold that has already lapsed cannot be extended.
// @Tags Lock
// @Accept json
// @Produce json
// @Param id path string true "Lock ID"
// @Param request body dto.ExtendLockRequest true "Extend Lock Request"
// @Success 200 {object} response.Data[dto.LockResponse] "Lock extended successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locks/{id}/extend [post]
// @Security BearerAuth
func (handler *Handler) ExtendLock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExtendLock")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ExtendLockRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	lock, err := handler.service.Extend(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to extend lock")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Lock extended successfully by user " + user)

	response.WithJSON(w, http.StatusOK, lock)
}

// ConfirmLock converts a hold into a confirmed reservation.
// @Summary Confirm a lock
// @Description Convert an active hold into a permanent reservation tied to an approved event. Fails with 404 when the hold has already expired.
// @Tags Lock
// @Accept json
// @Produce json
// @Param id path string true "Lock ID"
// @Param request body dto.ConfirmLockRequest true "Confirm Lock Request"
// @Success 200 {object} response.Message "Lock confirmed successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locks/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmLock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmLock")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ConfirmLockRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Confirm(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm lock")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Lock confirmed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Lock confirmed successfully")
}

// ReleaseLock releases a hold. Releasing a lock that no longer exists still
// succeeds.
// @Summary Release a lock
// @Description Release a hold on a venue. The operation is idempotent; releasing an expired or already-released lock succeeds.
// @Tags Lock
// @Accept json
// @Produce json
// @Param id path string true "Lock ID"
// @Success 200 {object} response.Message "Lock released successfully"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locks/{id} [delete]
// @Security BearerAuth
func (handler *Handler) ReleaseLock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleaseLock")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Release(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release lock")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Lock released successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Lock released successfully")
}

// ReleaseSession releases every lock the caller holds under one booking
// session, for when a user abandons venue selection midway.
// @Summary Release a booking session
// @Description Release all of the authenticated user's locks under the given booking session ID.
// @Tags Lock
// @Accept json
// @Produce json
// @Param sessionId path string true "Booking session ID"
// @Success 200 {object} response.Message "Session locks released successfully"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locks/sessions/{sessionId} [delete]
// @Security BearerAuth
func (handler *Handler) ReleaseSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleaseSession")
	defer scope.End()

	sessionID := chi.URLParam(r, "sessionId")

	if err := handler.service.ReleaseSession(ctx, sessionID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release session locks")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Session locks released successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Session locks released successfully")
}
