package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"
)

type bookingDocument struct {
	ID               string    `bson:"_id"`
	UserID           string    `bson:"user_id"`
	PackageID        string    `bson:"package_id"`
	SelectedServices []string  `bson:"selected_services"`
	TotalPrice       float64   `bson:"total_price"`
	Status           string    `bson:"status"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func newBookingDocument(b *entity.Booking) bookingDocument {
	return bookingDocument{
		ID:               b.ID.String(),
		UserID:           b.UserID.String(),
		PackageID:        b.PackageID.String(),
		SelectedServices: entity.ServicesToStrings(b.SelectedServices),
		TotalPrice:       b.TotalPrice,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func (d bookingDocument) entity() (*entity.Booking, error) {
	var ids [3]uuid.UUID
	for i, raw := range []string{d.ID, d.UserID, d.PackageID} {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("booking document id %q: %w", raw, err)
		}
		ids[i] = id
	}
	b := &entity.Booking{
		UserID:           ids[1],
		PackageID:        ids[2],
		SelectedServices: entity.ServicesFromStrings(d.SelectedServices),
		TotalPrice:       d.TotalPrice,
		Status:           entity.BookingStatus(d.Status),
	}
	b.ID = ids[0]
	b.CreatedAt = d.CreatedAt.UTC()
	b.UpdatedAt = d.UpdatedAt.UTC()
	return b, nil
}

type bookingMongoRepository struct {
	bookings *mongo.Collection
	packages *mongo.Collection
	log      *zap.Logger
}

func NewBookingMongoRepository(db *mongo.Database, log *zap.Logger) BookingRepository {
	return &bookingMongoRepository{
		bookings: db.Collection(database.BookingsCollection),
		packages: db.Collection(database.PackagesCollection),
		log:      log.With(zap.String("repository", "booking_mongo")),
	}
}

// CreateWithPackage reads then inserts without a transaction; a package deleted
// between the two steps can still receive this booking.
func (r *bookingMongoRepository) CreateWithPackage(ctx context.Context, booking *entity.Booking, price PriceFunc) (*entity.TravelPackage, error) {
	var doc packageDocument
	err := r.packages.FindOne(ctx, bson.M{"_id": booking.PackageID.String(), "deleted_at": nil}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to read package for booking", zap.Error(err), zap.String("package_id", booking.PackageID.String()))
		return nil, fmt.Errorf("read package %s: %w", booking.PackageID.String(), err)
	}

	pkg, err := doc.entity()
	if err != nil {
		return nil, err
	}

	booking.TotalPrice = price(pkg)

	if _, err := r.bookings.InsertOne(ctx, newBookingDocument(booking)); err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("package_id", booking.PackageID.String()),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return pkg, nil
}

func (r *bookingMongoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var doc bookingDocument
	err := r.bookings.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}
	return doc.entity()
}

func (r *bookingMongoRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingWithPackage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return r.findWithPackages(ctx, bson.M{"user_id": userID.String()}, opts)
}

func (r *bookingMongoRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*entity.BookingWithPackage, error) {
	if len(userIDs) == 0 {
		return []*entity.BookingWithPackage{}, nil
	}
	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	return r.findWithPackages(ctx, bson.M{"user_id": bson.M{"$in": ids}}, opts)
}

// findWithPackages populates packages with a single $in lookup.
func (r *bookingMongoRepository) findWithPackages(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.BookingWithPackage, error) {
	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	result := make([]*entity.BookingWithPackage, 0, len(docs))
	if len(docs) == 0 {
		return result, nil
	}

	seen := make(map[string]bool)
	var packageIDs []string
	for _, doc := range docs {
		if !seen[doc.PackageID] {
			seen[doc.PackageID] = true
			packageIDs = append(packageIDs, doc.PackageID)
		}
	}

	pkgCursor, err := r.packages.Find(ctx, bson.M{"_id": bson.M{"$in": packageIDs}, "deleted_at": nil})
	if err != nil {
		r.log.Error("Failed to populate booking packages", zap.Error(err))
		return nil, fmt.Errorf("populate packages: %w", err)
	}
	var pkgDocs []packageDocument
	if err := pkgCursor.All(ctx, &pkgDocs); err != nil {
		return nil, fmt.Errorf("decode packages: %w", err)
	}
	packages, err := packageEntities(pkgDocs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.TravelPackage, len(packages))
	for _, p := range packages {
		byID[p.ID] = p
	}

	for _, doc := range docs {
		b, err := doc.entity()
		if err != nil {
			return nil, err
		}
		result = append(result, &entity.BookingWithPackage{Booking: *b, Package: byID[b.PackageID]})
	}
	return result, nil
}

func (r *bookingMongoRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := r.bookings.CountDocuments(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		r.log.Error("Failed to count bookings by user ID", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}
	return count, nil
}

func (r *bookingMongoRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	result, err := r.bookings.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": updatedAt}},
	)
	if err != nil {
		r.log.Error("Failed to update booking status", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("update booking status %s: %w", id.String(), err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("update booking status %s: %w", id.String(), ErrNotFound)
	}
	return nil
}

// countPerPackagePipeline groups bookings, joins live packages and sorts busiest first.
func countPerPackagePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$package_id", "count": bson.M{"$sum": 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.PackagesCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "package",
		}}},
		{{Key: "$unwind", Value: "$package"}},
		{{Key: "$match", Value: bson.M{"package.deleted_at": nil}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "count", Value: -1},
			{Key: "package.from", Value: 1},
			{Key: "package.to", Value: 1},
			{Key: "_id", Value: 1},
		}}},
	}
}

type packageCountDocument struct {
	PackageID string          `bson:"_id"`
	Count     int64           `bson:"count"`
	Package   packageDocument `bson:"package"`
}

func (r *bookingMongoRepository) CountPerPackage(ctx context.Context) ([]*entity.PackageBookingCount, error) {
	cursor, err := r.bookings.Aggregate(ctx, countPerPackagePipeline())
	if err != nil {
		r.log.Error("Failed to count bookings per package", zap.Error(err))
		return nil, fmt.Errorf("count bookings per package: %w", err)
	}

	var docs []packageCountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode booking counts: %w", err)
	}

	counts := make([]*entity.PackageBookingCount, 0, len(docs))
	for _, doc := range docs {
		id, err := uuid.Parse(doc.PackageID)
		if err != nil {
			return nil, fmt.Errorf("booking count package id %q: %w", doc.PackageID, err)
		}
		pkg := entity.TravelPackage{From: doc.Package.From, To: doc.Package.To}
		counts = append(counts, &entity.PackageBookingCount{
			PackageID:   id,
			PackageName: pkg.DisplayName(),
			Count:       doc.Count,
		})
	}
	return counts, nil
}
