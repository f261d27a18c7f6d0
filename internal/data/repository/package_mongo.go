package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"
)

type packageDocument struct {
	ID               string     `bson:"_id"`
	From             string     `bson:"from"`
	To               string     `bson:"to"`
	StartDate        time.Time  `bson:"start_date"`
	EndDate          time.Time  `bson:"end_date"`
	BasePrice        float64    `bson:"base_price"`
	IncludedServices []string   `bson:"included_services"`
	CreatedBy        string     `bson:"created_by"`
	Description      *string    `bson:"description,omitempty"`
	ImageURL         *string    `bson:"image_url,omitempty"`
	CreatedAt        time.Time  `bson:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at"`
	DeletedAt        *time.Time `bson:"deleted_at"`
}

func newPackageDocument(p *entity.TravelPackage) packageDocument {
	return packageDocument{
		ID:               p.ID.String(),
		From:             p.From,
		To:               p.To,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		BasePrice:        p.BasePrice,
		IncludedServices: entity.ServicesToStrings(p.IncludedServices),
		CreatedBy:        p.CreatedBy.String(),
		Description:      p.Description,
		ImageURL:         p.ImageURL,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		DeletedAt:        p.DeletedAt,
	}
}

func (d packageDocument) entity() (*entity.TravelPackage, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("package document id %q: %w", d.ID, err)
	}
	createdBy, err := uuid.Parse(d.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("package document created_by %q: %w", d.CreatedBy, err)
	}
	p := &entity.TravelPackage{
		From:             d.From,
		To:               d.To,
		StartDate:        d.StartDate.UTC(),
		EndDate:          d.EndDate.UTC(),
		BasePrice:        d.BasePrice,
		IncludedServices: entity.ServicesFromStrings(d.IncludedServices),
		CreatedBy:        createdBy,
		Description:      d.Description,
		ImageURL:         d.ImageURL,
	}
	p.ID = id
	p.CreatedAt = d.CreatedAt.UTC()
	p.UpdatedAt = d.UpdatedAt.UTC()
	p.DeletedAt = d.DeletedAt
	return p, nil
}

type packageMongoRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewPackageMongoRepository(db *mongo.Database, log *zap.Logger) PackageRepository {
	return &packageMongoRepository{
		coll: db.Collection(database.PackagesCollection),
		log:  log.With(zap.String("repository", "package_mongo")),
	}
}

// packageFilterDocument is the Mongo equivalent of buildPackageWhere.
func packageFilterDocument(filter entity.PackageFilter) bson.M {
	doc := bson.M{"deleted_at": nil}

	if from := strings.TrimSpace(filter.From); from != "" {
		doc["from"] = primitive.Regex{Pattern: regexp.QuoteMeta(from), Options: "i"}
	}
	if to := strings.TrimSpace(filter.To); to != "" {
		doc["to"] = primitive.Regex{Pattern: regexp.QuoteMeta(to), Options: "i"}
	}

	start := bson.M{}
	end := bson.M{}
	if filter.StartFrom != nil {
		start["$gte"] = *filter.StartFrom
	}
	if filter.EndBy != nil {
		end["$lte"] = *filter.EndBy
	}
	if filter.Date != nil {
		start["$lte"] = *filter.Date
		end["$gte"] = *filter.Date
	}
	if len(start) > 0 {
		doc["start_date"] = start
	}
	if len(end) > 0 {
		doc["end_date"] = end
	}

	return doc
}

func packageSortDocument(sort entity.PackageSort) bson.D {
	switch sort {
	case entity.SortPriceAsc:
		return bson.D{{Key: "base_price", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	case entity.SortPriceDesc:
		return bson.D{{Key: "base_price", Value: -1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	}
}

func (r *packageMongoRepository) Create(ctx context.Context, pkg *entity.TravelPackage) error {
	if _, err := r.coll.InsertOne(ctx, newPackageDocument(pkg)); err != nil {
		r.log.Error("Failed to create package", zap.Error(err), zap.String("package_id", pkg.ID.String()))
		return fmt.Errorf("create package: %w", err)
	}
	return nil
}

func (r *packageMongoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	var doc packageDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String(), "deleted_at": nil}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID", zap.Error(err), zap.String("package_id", id.String()))
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}
	return doc.entity()
}

func (r *packageMongoRepository) FindAll(ctx context.Context, filter entity.PackageFilter, limit, offset int) ([]*entity.TravelPackage, error) {
	opts := options.Find().
		SetSort(packageSortDocument(filter.Sort)).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return r.find(ctx, packageFilterDocument(filter), opts)
}

func (r *packageMongoRepository) ListAll(ctx context.Context) ([]*entity.TravelPackage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"deleted_at": nil}, opts)
}

func (r *packageMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.TravelPackage, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		r.log.Error("Failed to query packages", zap.Error(err))
		return nil, fmt.Errorf("query packages: %w", err)
	}

	var docs []packageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode packages: %w", err)
	}

	return packageEntities(docs)
}

func packageEntities(docs []packageDocument) ([]*entity.TravelPackage, error) {
	packages := make([]*entity.TravelPackage, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.entity()
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}

func (r *packageMongoRepository) Count(ctx context.Context, filter entity.PackageFilter) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, packageFilterDocument(filter))
	if err != nil {
		r.log.Error("Failed to count packages", zap.Error(err))
		return 0, fmt.Errorf("count packages: %w", err)
	}
	return count, nil
}

func (r *packageMongoRepository) Update(ctx context.Context, pkg *entity.TravelPackage) error {
	doc := newPackageDocument(pkg)
	set := bson.M{
		"from":              doc.From,
		"to":                doc.To,
		"start_date":        doc.StartDate,
		"end_date":          doc.EndDate,
		"base_price":        doc.BasePrice,
		"included_services": doc.IncludedServices,
		"description":       doc.Description,
		"image_url":         doc.ImageURL,
		"updated_at":        doc.UpdatedAt,
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID, "deleted_at": nil}, bson.M{"$set": set})
	if err != nil {
		r.log.Error("Failed to update package", zap.Error(err), zap.String("package_id", doc.ID))
		return fmt.Errorf("update package %s: %w", doc.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("update package %s: %w", doc.ID, ErrNotFound)
	}
	return nil
}

func (r *packageMongoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id.String(), "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}},
	)
	if err != nil {
		r.log.Error("Failed to delete package", zap.Error(err), zap.String("package_id", id.String()))
		return fmt.Errorf("delete package %s: %w", id.String(), err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("delete package %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Package deleted", zap.String("package_id", id.String()))
	return nil
}
