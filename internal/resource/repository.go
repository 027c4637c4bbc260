package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing resources and their kind-specific
// detail records.
type Repository interface {
	Create(ctx context.Context, res *Resource) error
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, error)
	UpdateDetail(ctx context.Context, res *Resource) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// Create inserts the resource row and its detail row in one transaction so a
// resource can never exist without its detail record.
func (r *pgxRepository) Create(ctx context.Context, res *Resource) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create resource tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertResource = `
		INSERT INTO public.resources (kind)
		VALUES ($1)
		RETURNING id, created_at
	`
	if err := tx.QueryRow(ctx, insertResource, res.Kind).Scan(&res.ID, &res.CreatedAt); err != nil {
		return fmt.Errorf("create resource failed: %w", err)
	}

	var detailErr error
	switch res.Kind {
	case KindRoom:
		const q = `INSERT INTO public.rooms (resource_id, name, capacity, status) VALUES ($1, $2, $3, $4)`
		d := res.Detail.Room
		_, detailErr = tx.Exec(ctx, q, res.ID, d.Name, d.Capacity, d.Status)
	case KindVehicle:
		const q = `INSERT INTO public.vehicles (resource_id, brand, model, plate, status) VALUES ($1, $2, $3, $4, $5)`
		d := res.Detail.Vehicle
		_, detailErr = tx.Exec(ctx, q, res.ID, d.Brand, d.Model, d.Plate, d.Status)
	case KindEquipment:
		const q = `INSERT INTO public.equipment (resource_id, name, serial_number, status) VALUES ($1, $2, $3, $4)`
		d := res.Detail.Equipment
		_, detailErr = tx.Exec(ctx, q, res.ID, d.Name, d.SerialNumber, d.Status)
	default:
		return ErrInvalidKind
	}
	if detailErr != nil {
		var pgErr *pgconn.PgError
		if errors.As(detailErr, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("create resource detail failed: %w", detailErr)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create resource tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Resource, error) {
	const query = `
		SELECT id, kind, created_at
		FROM public.resources
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var res Resource
	if err := row.Scan(&res.ID, &res.Kind, &res.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get resource failed: %w", err)
	}

	if err := r.loadDetails(ctx, []*Resource{&res}); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Resource, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "kind", "created_at").
		From("public.resources").
		OrderBy("created_at ASC")

	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": filter.Kind})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list resources query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources failed: %w", err)
	}
	defer rows.Close()

	var result []*Resource
	for rows.Next() {
		var res Resource
		if err := rows.Scan(&res.ID, &res.Kind, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resource failed: %w", err)
		}
		result = append(result, &res)
	}

	if err := r.loadDetails(ctx, result); err != nil {
		return nil, err
	}

	if !filter.IncludeRetired {
		kept := result[:0]
		for _, res := range result {
			if res.Status() != StatusRetired {
				kept = append(kept, res)
			}
		}
		result = kept
	}

	return result, nil
}

// loadDetails fetches the detail records for all given resources with one
// query per kind instead of one query per resource.
func (r *pgxRepository) loadDetails(ctx context.Context, resources []*Resource) error {
	byKind := make(map[Kind][]string)
	index := make(map[string]*Resource, len(resources))
	for _, res := range resources {
		byKind[res.Kind] = append(byKind[res.Kind], res.ID)
		index[res.ID] = res
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	if ids := byKind[KindRoom]; len(ids) > 0 {
		sql, args, err := psql.Select("resource_id", "name", "capacity", "status").
			From("public.rooms").
			Where(squirrel.Eq{"resource_id": ids}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build rooms detail query failed: %w", err)
		}
		rows, err := r.pool.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("load room details failed: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			var d Room
			if err := rows.Scan(&id, &d.Name, &d.Capacity, &d.Status); err != nil {
				return fmt.Errorf("scan room detail failed: %w", err)
			}
			index[id].Detail = Detail{Room: &d}
		}
	}

	if ids := byKind[KindVehicle]; len(ids) > 0 {
		sql, args, err := psql.Select("resource_id", "brand", "model", "plate", "status").
			From("public.vehicles").
			Where(squirrel.Eq{"resource_id": ids}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build vehicles detail query failed: %w", err)
		}
		rows, err := r.pool.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("load vehicle details failed: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			var d Vehicle
			if err := rows.Scan(&id, &d.Brand, &d.Model, &d.Plate, &d.Status); err != nil {
				return fmt.Errorf("scan vehicle detail failed: %w", err)
			}
			index[id].Detail = Detail{Vehicle: &d}
		}
	}

	if ids := byKind[KindEquipment]; len(ids) > 0 {
		sql, args, err := psql.Select("resource_id", "name", "serial_number", "status").
			From("public.equipment").
			Where(squirrel.Eq{"resource_id": ids}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build equipment detail query failed: %w", err)
		}
		rows, err := r.pool.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("load equipment details failed: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			var d Equipment
			if err := rows.Scan(&id, &d.Name, &d.SerialNumber, &d.Status); err != nil {
				return fmt.Errorf("scan equipment detail failed: %w", err)
			}
			index[id].Detail = Detail{Equipment: &d}
		}
	}

	return nil
}

func (r *pgxRepository) UpdateDetail(ctx context.Context, res *Resource) error {
	var (
		ct  pgconn.CommandTag
		err error
	)

	switch res.Kind {
	case KindRoom:
		const q = `UPDATE public.rooms SET name = $1, capacity = $2, status = $3 WHERE resource_id = $4`
		d := res.Detail.Room
		ct, err = r.pool.Exec(ctx, q, d.Name, d.Capacity, d.Status, res.ID)
	case KindVehicle:
		const q = `UPDATE public.vehicles SET brand = $1, model = $2, plate = $3, status = $4 WHERE resource_id = $5`
		d := res.Detail.Vehicle
		ct, err = r.pool.Exec(ctx, q, d.Brand, d.Model, d.Plate, d.Status, res.ID)
	case KindEquipment:
		const q = `UPDATE public.equipment SET name = $1, serial_number = $2, status = $3 WHERE resource_id = $4`
		d := res.Detail.Equipment
		ct, err = r.pool.Exec(ctx, q, d.Name, d.SerialNumber, d.Status, res.ID)
	default:
		return ErrInvalidKind
	}

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("update resource detail failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the resource row; detail rows are removed by ON DELETE CASCADE.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.resources WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete resource failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
