package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookingcore/resource-booking-backend/internal/resource"
)

// Repository defines methods for accessing booking data from storage.
//
// The conflict check and the insert that follows it form a check-then-act
// sequence: callers that create or move a booking must run both inside InTx
// with LockResource held, otherwise two concurrent requests can pass the
// check and both commit.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateInterval(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, id string, status Status) error

	// HasOverlap checks if any booking in an active status (pending or
	// confirmed) overlaps the half-open interval [start, end) on the resource.
	// excludeBookingID is used during updates to ignore the booking itself.
	HasOverlap(ctx context.Context, resourceID string, kind resource.Kind, start, end time.Time, excludeBookingID string) (bool, error)

	// OverlappingResourceIDs returns the subset of resourceIDs that have an
	// active booking overlapping [start, end). One query for the whole batch.
	OverlappingResourceIDs(ctx context.Context, resourceIDs []string, start, end time.Time) (map[string]struct{}, error)

	// CountActiveForUser counts the requester's bookings in an active status
	// whose end time is after asOf. A booking that already started but has
	// not ended still counts.
	CountActiveForUser(ctx context.Context, requesterID string, asOf time.Time) (int, error)

	// ListActiveAt returns all bookings in an active status whose interval
	// covers the given instant. One query for all resources.
	ListActiveAt(ctx context.Context, at time.Time) ([]*Booking, error)

	// Stats aggregates booking counts for dashboard views.
	Stats(ctx context.Context, now time.Time) (Stats, error)

	// InTx runs fn against a repository bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(r Repository) error) error

	// LockResource takes a transaction-scoped advisory lock serializing all
	// writers of the given (resourceID, kind). Only valid inside InTx.
	LockResource(ctx context.Context, resourceID string, kind resource.Kind) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the same query
// code runs inside and outside transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepository struct {
	db   querier
	pool *pgxpool.Pool // nil when bound to a transaction
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{db: pool, pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("resource_id", "resource_kind", "requester_id", "start_time", "end_time", "status").
		Values(b.ResourceID, b.ResourceKind, b.RequesterID, b.StartTime, b.EndTime, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.db.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	const query = `
		SELECT id, resource_id, resource_kind, requester_id, start_time, end_time, status, created_at, updated_at
		FROM public.bookings
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.ResourceID, &b.ResourceKind, &b.RequesterID,
		&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "resource_id", "resource_kind", "requester_id",
		"start_time", "end_time", "status", "created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).From("public.bookings")

	if filter.RequesterID != "" {
		query = query.Where(squirrel.Eq{"requester_id": filter.RequesterID})
	}
	if filter.ResourceID != "" {
		query = query.Where(squirrel.Eq{"resource_id": filter.ResourceID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"start_time": *filter.To})
	}

	orderBy := "start_time"
	switch filter.SortBy {
	case "start_time", "end_time", "created_at", "status":
		orderBy = filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder == "asc" {
		orderDir = "ASC"
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ResourceID, &b.ResourceKind, &b.RequesterID,
			&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateInterval(ctx context.Context, b *Booking) error {
	const query = `
		UPDATE public.bookings
		SET start_time = $1, end_time = $2, updated_at = now()
		WHERE id = $3
	`
	ct, err := r.db.Exec(ctx, query, b.StartTime, b.EndTime, b.ID)
	if err != nil {
		return fmt.Errorf("update booking interval failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`
	ct, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, resourceID string, kind resource.Kind, start, end time.Time, excludeBookingID string) (bool, error) {
	// Overlap test for half-open intervals, mirroring Overlaps:
	// existing.start < end AND existing.end > start. Touching intervals
	// (existing.end == start) do not conflict. Cancelled and rejected
	// bookings never conflict.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"resource_kind": kind}).
		Where(squirrel.Eq{"status": ActiveStatuses}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) OverlappingResourceIDs(ctx context.Context, resourceIDs []string, start, end time.Time) (map[string]struct{}, error) {
	booked := make(map[string]struct{})
	if len(resourceIDs) == 0 {
		return booked, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("DISTINCT resource_id").
		From("public.bookings").
		Where(squirrel.Eq{"resource_id": resourceIDs}).
		Where(squirrel.Eq{"status": ActiveStatuses}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build batch overlap query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("batch overlap query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan booked resource id failed: %w", err)
		}
		booked[id] = struct{}{}
	}
	return booked, nil
}

func (r *pgxRepository) CountActiveForUser(ctx context.Context, requesterID string, asOf time.Time) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"requester_id": requesterID}).
		Where(squirrel.Eq{"status": ActiveStatuses}).
		Where(squirrel.Gt{"end_time": asOf}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count active bookings query failed: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active bookings failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) ListActiveAt(ctx context.Context, at time.Time) ([]*Booking, error) {
	// A half-open interval covers the instant iff start <= at < end.
	const query = `
		SELECT id, resource_id, resource_kind, requester_id, start_time, end_time, status, created_at, updated_at
		FROM public.bookings
		WHERE status = ANY($1) AND start_time <= $2 AND end_time > $2
	`
	rows, err := r.db.Query(ctx, query, activeStatusStrings(), at)
	if err != nil {
		return nil, fmt.Errorf("list active bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ResourceID, &b.ResourceKind, &b.RequesterID,
			&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan active booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *pgxRepository) Stats(ctx context.Context, now time.Time) (Stats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	const query = `
		SELECT
			count(*),
			count(*) FILTER (WHERE created_at >= $1),
			count(*) FILTER (WHERE status = ANY($2) AND end_time > $3),
			count(*) FILTER (WHERE status = 'cancelled')
		FROM public.bookings
	`
	var s Stats
	err := r.db.QueryRow(ctx, query, startOfDay, activeStatusStrings(), now).
		Scan(&s.Total, &s.CreatedToday, &s.Active, &s.Cancelled)
	if err != nil {
		return Stats{}, fmt.Errorf("booking stats query failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) InTx(ctx context.Context, fn func(repo Repository) error) error {
	if r.pool == nil {
		// Already inside a transaction; reuse it.
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgxRepository{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) LockResource(ctx context.Context, resourceID string, kind resource.Kind) error {
	// pg_advisory_xact_lock serializes concurrent writers of the same
	// resource; the lock releases automatically at commit/rollback.
	const query = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

	if _, err := r.db.Exec(ctx, query, resourceID+"/"+string(kind)); err != nil {
		return fmt.Errorf("lock resource failed: %w", err)
	}
	return nil
}
