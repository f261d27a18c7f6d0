package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"
)

// PriceFunc computes a booking's total from the package it is booked against.
type PriceFunc func(pkg *entity.TravelPackage) float64

type BookingRepository interface {
	// CreateWithPackage reads the (non-deleted) package, prices the booking and
	// inserts it. It returns a nil package and inserts nothing when the package
	// does not exist.
	CreateWithPackage(ctx context.Context, booking *entity.Booking, price PriceFunc) (*entity.TravelPackage, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingWithPackage, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*entity.BookingWithPackage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error
	CountPerPackage(ctx context.Context) ([]*entity.PackageBookingCount, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.user_id, b.package_id, b.selected_services, b.total_price, b.status, b.created_at, b.updated_at`

// joinedPackageColumns are nullable because of the LEFT JOIN on live packages.
const joinedPackageColumns = `p.id, p.origin, p.destination, p.start_date, p.end_date, p.base_price,
		p.included_services, p.created_by, p.description, p.image_url, p.created_at, p.updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		booking  entity.Booking
		services []string
	)
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.PackageID,
		&services,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	booking.SelectedServices = entity.ServicesFromStrings(services)
	return &booking, nil
}

func scanBookingWithPackage(row pgx.Row) (*entity.BookingWithPackage, error) {
	var (
		b        entity.BookingWithPackage
		services []string

		pkgID                  *uuid.UUID
		origin, destination    *string
		startDate, endDate     *time.Time
		basePrice              *float64
		included               []string
		createdBy              *uuid.UUID
		description, imageURL  *string
		pkgCreated, pkgUpdated *time.Time
	)
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.PackageID,
		&services,
		&b.TotalPrice,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
		&pkgID,
		&origin,
		&destination,
		&startDate,
		&endDate,
		&basePrice,
		&included,
		&createdBy,
		&description,
		&imageURL,
		&pkgCreated,
		&pkgUpdated,
	)
	if err != nil {
		return nil, err
	}
	b.SelectedServices = entity.ServicesFromStrings(services)

	if pkgID != nil {
		pkg := &entity.TravelPackage{
			From:             *origin,
			To:               *destination,
			StartDate:        *startDate,
			EndDate:          *endDate,
			BasePrice:        *basePrice,
			IncludedServices: entity.ServicesFromStrings(included),
			CreatedBy:        *createdBy,
			Description:      description,
			ImageURL:         imageURL,
		}
		pkg.ID = *pkgID
		pkg.CreatedAt = *pkgCreated
		pkg.UpdatedAt = *pkgUpdated
		b.Package = pkg
	}
	return &b, nil
}

func (r *bookingRepository) CreateWithPackage(ctx context.Context, booking *entity.Booking, price PriceFunc) (pkg *entity.TravelPackage, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return nil, fmt.Errorf("begin booking tx: %w", err)
	}
	defer func() {
		if err != nil || pkg == nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// FOR SHARE keeps the package from being deleted or repriced until commit.
	query := `SELECT ` + packageColumns + ` FROM travel_packages WHERE id = $1 AND deleted_at IS NULL FOR SHARE`
	pkg, err = scanPackage(tx.QueryRow(ctx, query, booking.PackageID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock package for booking",
			zap.Error(err),
			zap.String("package_id", booking.PackageID.String()),
		)
		return nil, fmt.Errorf("lock package %s: %w", booking.PackageID.String(), err)
	}

	booking.TotalPrice = price(pkg)

	insert := `
		INSERT INTO bookings (id, user_id, package_id, selected_services, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, insert,
		booking.ID,
		booking.UserID,
		booking.PackageID,
		entity.ServicesToStrings(booking.SelectedServices),
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("package_id", booking.PackageID.String()),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking", zap.Error(err))
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	return pkg, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingWithPackage, error) {
	query := `
		SELECT ` + bookingColumns + `, ` + joinedPackageColumns + `
		FROM bookings b
		LEFT JOIN travel_packages p ON p.id = b.package_id AND p.deleted_at IS NULL
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id
		LIMIT $2 OFFSET $3
	`

	return r.queryWithPackage(ctx, query, userID, limit, offset)
}

func (r *bookingRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*entity.BookingWithPackage, error) {
	if len(userIDs) == 0 {
		return []*entity.BookingWithPackage{}, nil
	}

	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT ` + bookingColumns + `, ` + joinedPackageColumns + `
		FROM bookings b
		LEFT JOIN travel_packages p ON p.id = b.package_id AND p.deleted_at IS NULL
		WHERE b.user_id = ANY($1::uuid[])
		ORDER BY b.created_at DESC, b.id
	`

	return r.queryWithPackage(ctx, query, ids)
}

func (r *bookingRepository) queryWithPackage(ctx context.Context, query string, args ...any) ([]*entity.BookingWithPackage, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.BookingWithPackage, 0)
	for rows.Next() {
		b, err := scanBookingWithPackage(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	query := `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking status %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking status %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

// CountPerPackage groups bookings of live packages, busiest first.
func (r *bookingRepository) CountPerPackage(ctx context.Context) ([]*entity.PackageBookingCount, error) {
	query := `
		SELECT p.id, p.origin, p.destination, COUNT(b.id) AS total
		FROM bookings b
		JOIN travel_packages p ON p.id = b.package_id AND p.deleted_at IS NULL
		GROUP BY p.id, p.origin, p.destination
		ORDER BY total DESC, p.origin, p.destination, p.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count bookings per package", zap.Error(err))
		return nil, fmt.Errorf("count bookings per package: %w", err)
	}
	defer rows.Close()

	counts := make([]*entity.PackageBookingCount, 0)
	for rows.Next() {
		var (
			pkg   entity.TravelPackage
			count int64
		)
		if err := rows.Scan(&pkg.ID, &pkg.From, &pkg.To, &count); err != nil {
			r.log.Error("Failed to scan booking count row", zap.Error(err))
			return nil, fmt.Errorf("scan booking count row: %w", err)
		}
		counts = append(counts, &entity.PackageBookingCount{
			PackageID:   pkg.ID,
			PackageName: pkg.DisplayName(),
			Count:       count,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking count rows: %w", err)
	}

	return counts, nil
}
