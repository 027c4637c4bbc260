package rule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookingcore/resource-booking-backend/internal/resource"
)

// Repository defines methods for accessing booking rules.
type Repository interface {
	Create(ctx context.Context, r *Rule) error
	GetByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context) ([]*Rule, error)
	Update(ctx context.Context, r *Rule) error
	Delete(ctx context.Context, id string) error

	// FindByScope returns the first rule matching the exact scope, where a nil
	// resourceID or kind matches a NULL column. Used by the resolver to probe
	// each precedence tier in turn.
	FindByScope(ctx context.Context, resourceID *string, kind *resource.Kind) (*Rule, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const ruleColumns = `id, resource_id, resource_kind, max_duration_minutes, min_lead_time_minutes,
		allowed_start_time, allowed_end_time, blocked_weekdays, max_active_bookings_per_user, created_at`

func scanRule(row pgx.Row) (*Rule, error) {
	var r Rule
	if err := row.Scan(
		&r.ID, &r.ResourceID, &r.ResourceKind, &r.MaxDurationMinutes, &r.MinLeadTimeMinutes,
		&r.AllowedStartTime, &r.AllowedEndTime, &r.BlockedWeekdays, &r.MaxActiveBookingsPerUser, &r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *pgxRepository) Create(ctx context.Context, r *Rule) error {
	const query = `
		INSERT INTO public.booking_rules
			(resource_id, resource_kind, max_duration_minutes, min_lead_time_minutes,
			 allowed_start_time, allowed_end_time, blocked_weekdays, max_active_bookings_per_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := repo.pool.QueryRow(ctx, query,
		r.ResourceID, r.ResourceKind, r.MaxDurationMinutes, r.MinLeadTimeMinutes,
		r.AllowedStartTime, r.AllowedEndTime, r.BlockedWeekdays, r.MaxActiveBookingsPerUser,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("create rule failed: %w", err)
	}
	return nil
}

func (repo *pgxRepository) GetByID(ctx context.Context, id string) (*Rule, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.booking_rules WHERE id = $1`, ruleColumns)

	r, err := scanRule(repo.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rule failed: %w", err)
	}
	return r, nil
}

func (repo *pgxRepository) List(ctx context.Context) ([]*Rule, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.booking_rules ORDER BY created_at ASC`, ruleColumns)

	rows, err := repo.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule failed: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func (repo *pgxRepository) Update(ctx context.Context, r *Rule) error {
	const query = `
		UPDATE public.booking_rules
		SET resource_id = $1, resource_kind = $2, max_duration_minutes = $3, min_lead_time_minutes = $4,
			allowed_start_time = $5, allowed_end_time = $6, blocked_weekdays = $7, max_active_bookings_per_user = $8
		WHERE id = $9
	`
	ct, err := repo.pool.Exec(ctx, query,
		r.ResourceID, r.ResourceKind, r.MaxDurationMinutes, r.MinLeadTimeMinutes,
		r.AllowedStartTime, r.AllowedEndTime, r.BlockedWeekdays, r.MaxActiveBookingsPerUser, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.booking_rules WHERE id = $1`

	ct, err := repo.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *pgxRepository) FindByScope(ctx context.Context, resourceID *string, kind *resource.Kind) (*Rule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "resource_id", "resource_kind", "max_duration_minutes", "min_lead_time_minutes",
		"allowed_start_time", "allowed_end_time", "blocked_weekdays", "max_active_bookings_per_user", "created_at",
	).From("public.booking_rules")

	if resourceID != nil {
		query = query.Where(squirrel.Eq{"resource_id": *resourceID})
	} else {
		query = query.Where("resource_id IS NULL")
	}
	if kind != nil {
		query = query.Where(squirrel.Eq{"resource_kind": *kind})
	} else {
		query = query.Where("resource_kind IS NULL")
	}

	// A correctly maintained rule set has at most one rule per scope; ordering
	// makes the pick deterministic if that invariant is ever broken.
	query = query.OrderBy("created_at ASC").Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find rule query failed: %w", err)
	}

	r, err := scanRule(repo.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find rule failed: %w", err)
	}
	return r, nil
}
