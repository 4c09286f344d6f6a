package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"atrium/config"
	"atrium/infras/kafka"
	"atrium/infras/otel"
	eventModel "atrium/internal/domains/event/model"
	eventRepo "atrium/internal/domains/event/repository"
	"atrium/internal/domains/lock/model"
	"atrium/internal/domains/lock/model/dto"
	"atrium/internal/domains/lock/repository"
	venueModel "atrium/internal/domains/venue/model"
	venueRepo "atrium/internal/domains/venue/repository"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	"atrium/shared/timezone"
)

const (
	lifecycleAcquired  = "lock.acquired"
	lifecycleExtended  = "lock.extended"
	lifecycleReleased  = "lock.released"
	lifecycleConfirmed = "lock.confirmed"
)

// lifecycleEvent is the payload published to Kafka for the notification
// collaborator. Delivery is best effort and never blocks engine operations.
type lifecycleEvent struct {
	Type        string `json:"type"`
	LockID      string `json:"lock_id"`
	VenueID     string `json:"venue_id,omitempty"`
	OwnerUserID string `json:"owner_user_id,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
	EventID     string `json:"event_id,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
}

type Lock interface {
	Acquire(ctx context.Context, req dto.AcquireLockRequest) (dto.LockResponse, error)
	Extend(ctx context.Context, id string, req dto.ExtendLockRequest) (dto.LockResponse, error)
	Release(ctx context.Context, id string) error
	ReleaseSession(ctx context.Context, sessionID string) error
	Confirm(ctx context.Context, id string, req dto.ConfirmLockRequest) error
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	ListMine(ctx context.Context, sessionID string) (dto.GetLocksResponse, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type serviceImpl struct {
	repo      repository.Lock
	venueRepo venueRepo.Venue
	eventRepo eventRepo.Event
	cfg       *config.Config
	producer  kafka.Client
	otel      otel.Otel
}

func New(repo repository.Lock, venueRepo venueRepo.Venue, eventRepo eventRepo.Event, cfg *config.Config, producer kafka.Client, otel otel.Otel) Lock {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		eventRepo: eventRepo,
		cfg:       cfg,
		producer:  producer,
		otel:      otel,
	}
}

func (s *serviceImpl) holdDuration(lockType string, requestedMinutes int) time.Duration {
	if requestedMinutes > 0 {
		return time.Duration(requestedMinutes) * time.Minute
	}

	if lockType == model.LockTypeDraft {
		return time.Duration(s.cfg.Lock.DraftHoldMinutes) * time.Minute
	}

	return time.Duration(s.cfg.Lock.TemporaryHoldMinutes) * time.Minute
}

// Acquire claims [start, end) on a venue for the calling user. The conflict
// check and the insert happen atomically in the repository; an interval
// collision here is an expected outcome, not an error condition.
func (s *serviceImpl) Acquire(ctx context.Context, req dto.AcquireLockRequest) (res dto.LockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lock.Acquire")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return res, failure.Unauthorized("authentication required to hold a venue")
	}

	date, start, end, err := req.Window()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse lock window")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err))
	}

	if !start.Before(end) {
		return res, failure.BadRequestFromString("start_time must be before end_time")
	}

	venueExists, err := s.venueRepo.Exist(ctx, shared.FilterByID(req.VenueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if venue exists")

		return res, fmt.Errorf("failed to check if venue exists: %w", err)
	}

	if !venueExists {
		return res, failure.BadRequestFromString("venue does not exist")
	}

	expiresAt := timezone.Now().Add(s.holdDuration(req.LockType, req.DurationMinutes))
	lock := req.ToModel(userID, date, start, end, expiresAt)

	if err = s.repo.Acquire(ctx, lock); err != nil {
		if errors.Is(err, repository.ErrIntervalTaken) {
			return res, failure.Conflict(fmt.Sprintf(
				"venue is already held from %s to %s on %s, pick another time",
				req.StartTime, req.EndTime, req.EventDate,
			))
		}

		log.Error().Err(err).Msg("failed to acquire venue lock")

		return res, fmt.Errorf("failed to acquire venue lock: %w", err)
	}

	s.publish(ctx, lifecycleAcquired, lock, "")

	res.FromModel(lock)

	return res, nil
}

// Extend slides the expiry forward. It never shortens the remaining time:
// the new expiry is max(now, current expiry) plus the requested minutes.
func (s *serviceImpl) Extend(ctx context.Context, id string, req dto.ExtendLockRequest) (res dto.LockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lock.Extend")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lock, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lock")

		return res, fmt.Errorf("failed to get lock: %w", err)
	}

	if lock.ID == constant.Empty || lock.Expired(timezone.Now()) {
		return res, failure.NotFound("your hold on this venue is gone, restart venue selection")
	}

	if !lock.OwnedBy(userID) {
		return res, failure.ResourceRestrictedError
	}

	if lock.LockType == model.LockTypeConfirmed {
		return res, failure.BadRequestFromString("a confirmed booking does not expire and cannot be extended")
	}

	base := timezone.Now()
	if lock.ExpiresAt != nil && lock.ExpiresAt.After(base) {
		base = *lock.ExpiresAt
	}

	expiresAt := base.Add(time.Duration(req.AdditionalMinutes) * time.Minute)

	extended, err := s.repo.Extend(ctx, id, expiresAt, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to extend lock")

		return res, fmt.Errorf("failed to extend lock: %w", err)
	}

	if !extended {
		// Lost the race with expiry between the read and the write.
		return res, failure.NotFound("your hold on this venue is gone, restart venue selection")
	}

	lock.ExpiresAt = &expiresAt
	s.publish(ctx, lifecycleExtended, lock, "")

	res.FromModel(lock)

	return res, nil
}

// Release frees the interval. Idempotent: a lock that is already gone means
// the desired end state holds, so the caller still gets success.
func (s *serviceImpl) Release(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lock.Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lock, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lock")

		return fmt.Errorf("failed to get lock: %w", err)
	}

	if lock.ID == constant.Empty || lock.Expired(timezone.Now()) {
		return nil
	}

	if !lock.OwnedBy(userID) && !isElevated(ctx) {
		return failure.ResourceRestrictedError
	}

	if lock.LockType == model.LockTypeConfirmed {
		return failure.BadRequestFromString("a confirmed booking cannot be released, cancel the event instead")
	}

	if err = s.repo.Release(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to release lock")

		return fmt.Errorf("failed to release lock: %w", err)
	}

	s.publish(ctx, lifecycleReleased, lock, "")

	return nil
}

// ReleaseSession is the disconnect hook: it drops every unconfirmed lock the
// calling user created under the given browser session. Best effort by
// contract; expiry remains the real guarantee.
func (s *serviceImpl) ReleaseSession(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lock.ReleaseSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return failure.Unauthorized("authentication required")
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOwnerUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldSessionID,
				Operator: gDto.FilterOperatorEq,
				Value:    sessionID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterPlainQuery,
				Value:    model.ActiveCondition,
			},
		},
	}

	// Snapshot first so the lifecycle events carry the real lock ids.
	locks, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list session locks")

		return fmt.Errorf("failed to list session locks: %w", err)
	}

	released, err := s.repo.ReleaseSession(ctx, userID, sessionID)
	if err != nil {
		log.Error().Err(err).Msg("failed to release session locks")

		return fmt.Errorf("failed to release session locks: %w", err)
	}

	for _, lock := range locks {
		if lock.LockType == model.LockTypeConfirmed {
			continue
		}

		s.publish(ctx, lifecycleReleased, lock, "")
	}

	log.Info().Str("session_id", sessionID).Int64("released", released).Msg("session locks released")

	return nil
}

// Confirm promotes a hold into a confirmed booking linked to an event. The
// repository update is guarded on expiry, which settles the race between
// hold lapse and promotion: if the guard misses, someone else may already
// occupy the interval and the user has to start over.
func (s *serviceImpl) Confirm(ctx context.Context, id string, req dto.ConfirmLockRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lock.Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lock, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lock")

		return fmt.Errorf("failed to get lock: %w", err)
	}

	if lock.ID == constant.Empty || lock.Expired(timezone.Now()) {
		return failure.NotFound("your hold on this venue is gone, restart venue selection")
	}

	if !lock.OwnedBy(userID) {
		return failure.ResourceRestrictedError
	}

	if lock.LockType == model.LockTypeConfirmed {
		return failure.BadRequestFromString("lock is already confirmed")
	}

	event, err := s.eventRepo.Get(ctx, shared.FilterByID(req.EventID, eventModel.FieldID, eventModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event")

		return fmt.Errorf("failed to get event: %w", err)
	}

	if event.ID == constant.Empty {
		return failure.BadRequestFromString("event does not exist")
	}

	if event.OrganizerUserID != userID {
		return failure.BadRequestFromString("event does not belong to you")
	}

	confirmed, err := s.repo.Confirm(ctx, id, req.EventID, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to confirm lock")

		return fmt.Errorf("failed to confirm lock: %w", err)
	}

	if !confirmed {
		return failure.NotFound("your hold on this venue is gone, restart venue selection")
	}

	s.publish(ctx, lifecycleConfirmed, lock, req.EventID)

	return nil
}

// CheckAvailability answers with the same predicate acquisition enforces, so
// "is it free" and "can I take it" cannot drift apart.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lock.CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, start, end, err := req.Window()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse availability window")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err))
	}

	if !start.Before(end) {
		return res, failure.BadRequestFromString("start_time must be before end_time")
	}

	overlapping, err := s.repo.Overlapping(ctx, req.VenueID, start, end, req.ExcludeLockID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	if len(overlapping) > 0 {
		res.Available = false
		res.Reason = fmt.Sprintf(
			"venue is already held from %s to %s on %s",
			timezone.Format(overlapping[0].StartTime, "15:04"),
			timezone.Format(overlapping[0].EndTime, "15:04"),
			timezone.Format(overlapping[0].EventDate, "2006-01-02"),
		)

		return res, nil
	}

	res.Available = true

	return res, nil
}

// ListMine returns the caller's active locks, optionally narrowed to one
// browser session. Expired rows are filtered out even if the sweeper has not
// removed them yet.
func (s *serviceImpl) ListMine(ctx context.Context, sessionID string) (res dto.GetLocksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lock.ListMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return res, failure.Unauthorized("authentication required")
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOwnerUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterPlainQuery,
				Value:    model.ActiveCondition,
			},
		},
	}

	if sessionID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldSessionID,
			Operator: gDto.FilterOperatorEq,
			Value:    sessionID,
			Table:    model.TableName,
		})
	}

	locks, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list locks")

		return res, fmt.Errorf("failed to list locks: %w", err)
	}

	res.FromModels(locks)

	return res, nil
}

// PurgeExpired is exposed for the sweeper.
func (s *serviceImpl) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lock.PurgeExpired")
	defer scope.End()

	purged, err := s.repo.PurgeExpired(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to purge expired locks")

		return 0, fmt.Errorf("failed to purge expired locks: %w", err)
	}

	return purged, nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, lock model.VenueLock, eventID string) {
	if s.producer == nil || s.cfg.Kafka.Topics.LockLifecycle == constant.Empty {
		return
	}

	payload := lifecycleEvent{
		Type:        eventType,
		LockID:      lock.ID,
		VenueID:     lock.VenueID,
		OwnerUserID: lock.OwnerUserID,
		SessionID:   lock.SessionID,
		EventID:     eventID,
	}

	if !lock.StartTime.IsZero() {
		payload.StartTime = timezone.Format(lock.StartTime, constant.DateFormat)
		payload.EndTime = timezone.Format(lock.EndTime, constant.DateFormat)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.LockLifecycle, kafka.Message{
			Key:   lock.VenueID,
			Value: payload,
		})
		if err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("failed to publish lock lifecycle event")
		}
	}()
}

func isElevated(ctx context.Context) bool {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return role == constant.RoleAdmin || role == constant.RoleSuperAdmin
}
