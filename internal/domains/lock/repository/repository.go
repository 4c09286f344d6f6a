package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/lock/model"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/logger"
	gRepo "atrium/shared/repository"
)

// ErrIntervalTaken reports that the requested interval collided with an
// existing lock or booking. It is raised from the exclusion constraint on
// venue_locks, so two concurrent acquisitions can never both succeed.
var ErrIntervalTaken = errors.New("interval already locked")

type Lock interface {
	Acquire(ctx context.Context, lock model.VenueLock) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.VenueLock, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.VenueLock, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Extend(ctx context.Context, id string, expiresAt time.Time, userID string) (bool, error)
	Confirm(ctx context.Context, id, eventID, userID string) (bool, error)
	Release(ctx context.Context, id string) error
	ReleaseSession(ctx context.Context, ownerUserID, sessionID string) (int64, error)
	Overlapping(ctx context.Context, venueID string, start, end time.Time, excludeID string) ([]model.VenueLock, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.VenueLock]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Lock {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.VenueLock](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// isConflict recognises the two ways Postgres rejects a doomed acquisition:
// the gist exclusion constraint (23P01) and a serialization failure (40001).
func isConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeExclusionViolation ||
			string(pqErr.Code) == constant.PqErrorCodeSerializationFailure
	}

	return false
}

// Acquire inserts a lock row after purging expired rows for the same venue in
// one transaction. Expired rows must go first because the exclusion
// constraint sees every remaining row, whatever its expiry. The constraint
// then decides the race: the losing insert comes back as ErrIntervalTaken.
func (repo *repositoryImpl) Acquire(ctx context.Context, lock model.VenueLock) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lock.Acquire")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin lock acquisition: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	purge := fmt.Sprintf(
		"DELETE FROM %s WHERE venue_id = $1 AND lock_type <> '%s' AND expires_at <= now()",
		model.TableName, model.LockTypeConfirmed,
	)
	if _, err = tx.ExecContext(ctx, purge, lock.VenueID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to purge expired locks: %w", err)
	}

	insert := fmt.Sprintf(`INSERT INTO %s
		(id, venue_id, event_date, start_time, end_time, lock_type, owner_user_id, session_id, expires_at, linked_event_id, created_at, created_by, modified_at, modified_by)
		VALUES (:id, :venue_id, :event_date, :start_time, :end_time, :lock_type, :owner_user_id, :session_id, :expires_at, :linked_event_id, :created_at, :created_by, :modified_at, :modified_by)`,
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, insert)

	if _, err = tx.NamedExecContext(ctx, insert, lock); err != nil {
		if isConflict(err) {
			err = ErrIntervalTaken

			return err
		}

		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to insert lock: %w", err)
	}

	if err = tx.Commit(); err != nil {
		if isConflict(err) {
			err = ErrIntervalTaken

			return err
		}

		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit lock acquisition: %w", err)
	}

	return nil
}

// Extend slides the expiry of an unconfirmed, unexpired lock. The guards sit
// in the statement itself so extension can never resurrect a lock that
// already lapsed between the service check and the write.
func (repo *repositoryImpl) Extend(ctx context.Context, id string, expiresAt time.Time, userID string) (extended bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lock.Extend")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		`UPDATE %s SET expires_at = $1, modified_at = now(), modified_by = $2
		 WHERE id = $3 AND lock_type <> '%s' AND expires_at > now()`,
		model.TableName, model.LockTypeConfirmed,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, expiresAt, userID, id)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to extend lock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read extend result: %w", err)
	}

	return affected > 0, nil
}

// Confirm promotes a still-live lock into a confirmed booking. A zero row
// count means the hold expired first; by then a rival may already own the
// interval, so the caller must treat it as lost, never retry the update.
func (repo *repositoryImpl) Confirm(ctx context.Context, id, eventID, userID string) (confirmed bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lock.Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		`UPDATE %s SET lock_type = '%s', linked_event_id = $1, expires_at = NULL, modified_at = now(), modified_by = $2
		 WHERE id = $3 AND lock_type <> '%s' AND expires_at > now()`,
		model.TableName, model.LockTypeConfirmed, model.LockTypeConfirmed,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, eventID, userID, id)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to confirm lock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read confirm result: %w", err)
	}

	return affected > 0, nil
}

// Release drops the row. Deleting a row that is already gone affects nothing
// and returns no error, which is exactly the idempotency release needs.
func (repo *repositoryImpl) Release(ctx context.Context, id string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lock.Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND lock_type <> '%s'", model.TableName, model.LockTypeConfirmed)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = repo.db.Write.ExecContext(ctx, query, id); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to release lock: %w", err)
	}

	return nil
}

// ReleaseSession drops every unconfirmed lock a browser session left behind.
func (repo *repositoryImpl) ReleaseSession(ctx context.Context, ownerUserID, sessionID string) (released int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lock.ReleaseSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE owner_user_id = $1 AND session_id = $2 AND lock_type <> '%s'",
		model.TableName, model.LockTypeConfirmed,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, ownerUserID, sessionID)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to release session locks: %w", err)
	}

	released, err = result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to read session release result: %w", err)
	}

	return released, nil
}

// Overlapping returns the active rows colliding with [start, end) on a venue.
// The WHERE clause is the SQL form of model.Overlaps plus
// model.ActiveCondition; availability answers and acquisition share it
// through this single method.
func (repo *repositoryImpl) Overlapping(ctx context.Context, venueID string, start, end time.Time, excludeID string) (locks []model.VenueLock, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lock.Overlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		`SELECT id, venue_id, event_date, start_time, end_time, lock_type, owner_user_id, session_id, expires_at, linked_event_id, created_at, created_by, modified_at, modified_by
		 FROM %s
		 WHERE venue_id = $1 AND start_time < $2 AND end_time > $3 AND %s AND id <> $4`,
		model.TableName, model.ActiveCondition,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &locks, query, venueID, end, start, excludeID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to query overlapping locks: %w", err)
	}

	return locks, nil
}

// PurgeExpired physically removes lapsed rows. Housekeeping only: every read
// filters on ActiveCondition regardless of when the sweeper last ran.
func (repo *repositoryImpl) PurgeExpired(ctx context.Context) (purged int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lock.PurgeExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE lock_type <> '%s' AND expires_at <= now()",
		model.TableName, model.LockTypeConfirmed,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to purge expired locks: %w", err)
	}

	purged, err = result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to read purge result: %w", err)
	}

	return purged, nil
}
