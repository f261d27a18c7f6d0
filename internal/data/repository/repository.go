package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"travel-booking/pkg/database"
)

var (
	// ErrDuplicate is returned when a unique constraint (user email) is violated.
	ErrDuplicate = errors.New("duplicate key")
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
)

type Repository struct {
	User    UserRepository
	Package PackageRepository
	Booking BookingRepository
	health  func(ctx context.Context) error
}

// Ping checks the backing store.
func (r *Repository) Ping(ctx context.Context) error {
	if r.health == nil {
		return nil
	}
	return r.health(ctx)
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Package: NewPackageRepository(db, log),
		Booking: NewBookingRepository(db, log),
		health:  db.Ping,
	}
}

func NewMongoRepository(db *mongo.Database, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserMongoRepository(db, log),
		Package: NewPackageMongoRepository(db, log),
		Booking: NewBookingMongoRepository(db, log),
		health: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// escapeLike makes user input literal inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
