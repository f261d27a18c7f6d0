package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.TravelPackage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error)
	FindAll(ctx context.Context, filter entity.PackageFilter, limit, offset int) ([]*entity.TravelPackage, error)
	Count(ctx context.Context, filter entity.PackageFilter) (int64, error)
	// ListAll returns every non-deleted package, used by analytics.
	ListAll(ctx context.Context) ([]*entity.TravelPackage, error)
	Update(ctx context.Context, pkg *entity.TravelPackage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type packageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPackageRepository(db database.PgxIface, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

const packageColumns = `id, origin, destination, start_date, end_date, base_price, included_services,
		created_by, description, image_url, created_at, updated_at, deleted_at`

func scanPackage(row pgx.Row) (*entity.TravelPackage, error) {
	var (
		pkg      entity.TravelPackage
		services []string
	)
	err := row.Scan(
		&pkg.ID,
		&pkg.From,
		&pkg.To,
		&pkg.StartDate,
		&pkg.EndDate,
		&pkg.BasePrice,
		&services,
		&pkg.CreatedBy,
		&pkg.Description,
		&pkg.ImageURL,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
		&pkg.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	pkg.IncludedServices = entity.ServicesFromStrings(services)
	return &pkg, nil
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.TravelPackage) error {
	query := `
		INSERT INTO travel_packages (id, origin, destination, start_date, end_date, base_price,
		                             included_services, created_by, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.From,
		pkg.To,
		pkg.StartDate,
		pkg.EndDate,
		pkg.BasePrice,
		entity.ServicesToStrings(pkg.IncludedServices),
		pkg.CreatedBy,
		pkg.Description,
		pkg.ImageURL,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create package",
			zap.Error(err),
			zap.String("package_id", pkg.ID.String()),
		)
		return fmt.Errorf("create package: %w", err)
	}

	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM travel_packages WHERE id = $1 AND deleted_at IS NULL`

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}

	return pkg, nil
}

// buildPackageWhere turns a filter into a WHERE clause with positional args.
func buildPackageWhere(filter entity.PackageFilter) (string, []any) {
	conditions := []string{"deleted_at IS NULL"}
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if from := strings.TrimSpace(filter.From); from != "" {
		add(`origin ILIKE '%%' || $%d::text || '%%'`, escapeLike(from))
	}
	if to := strings.TrimSpace(filter.To); to != "" {
		add(`destination ILIKE '%%' || $%d::text || '%%'`, escapeLike(to))
	}
	if filter.StartFrom != nil {
		add("start_date >= $%d", *filter.StartFrom)
	}
	if filter.EndBy != nil {
		add("end_date <= $%d", *filter.EndBy)
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d AND end_date >= $%d", len(args), len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func packageOrderBy(sort entity.PackageSort) string {
	switch sort {
	case entity.SortPriceAsc:
		return "ORDER BY base_price ASC, created_at DESC, id"
	case entity.SortPriceDesc:
		return "ORDER BY base_price DESC, created_at DESC, id"
	default:
		return "ORDER BY created_at DESC, id"
	}
}

func (r *packageRepository) FindAll(ctx context.Context, filter entity.PackageFilter, limit, offset int) ([]*entity.TravelPackage, error) {
	where, args := buildPackageWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM travel_packages %s %s LIMIT $%d OFFSET $%d`,
		packageColumns, where, packageOrderBy(filter.Sort), len(args)-1, len(args))

	return r.query(ctx, query, args...)
}

func (r *packageRepository) ListAll(ctx context.Context) ([]*entity.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM travel_packages WHERE deleted_at IS NULL ORDER BY start_date, id`
	return r.query(ctx, query)
}

func (r *packageRepository) query(ctx context.Context, query string, args ...any) ([]*entity.TravelPackage, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query packages", zap.Error(err))
		return nil, fmt.Errorf("query packages: %w", err)
	}
	defer rows.Close()

	packages := make([]*entity.TravelPackage, 0)
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			r.log.Error("Failed to scan package row", zap.Error(err))
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate package rows: %w", err)
	}

	return packages, nil
}

func (r *packageRepository) Count(ctx context.Context, filter entity.PackageFilter) (int64, error) {
	where, args := buildPackageWhere(filter)
	query := `SELECT COUNT(*) FROM travel_packages ` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count packages", zap.Error(err))
		return 0, fmt.Errorf("count packages: %w", err)
	}

	return count, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.TravelPackage) error {
	query := `
		UPDATE travel_packages
		SET origin = $2, destination = $3, start_date = $4, end_date = $5, base_price = $6,
		    included_services = $7, description = $8, image_url = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.From,
		pkg.To,
		pkg.StartDate,
		pkg.EndDate,
		pkg.BasePrice,
		entity.ServicesToStrings(pkg.IncludedServices),
		pkg.Description,
		pkg.ImageURL,
		pkg.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update package",
			zap.Error(err),
			zap.String("package_id", pkg.ID.String()),
		)
		return fmt.Errorf("update package %s: %w", pkg.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update package %s: %w", pkg.ID.String(), ErrNotFound)
	}

	return nil
}

// Delete soft-deletes; bookings keep referencing the row.
func (r *packageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE travel_packages SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		r.log.Error("Failed to delete package",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return fmt.Errorf("delete package %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete package %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Package deleted", zap.String("package_id", id.String()))
	return nil
}
