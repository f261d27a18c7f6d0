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

// userDocument is the BSON shape of a user; ids are stored as UUID strings.
type userDocument struct {
	ID             string    `bson:"_id"`
	Email          string    `bson:"email"`
	Password       *string   `bson:"password,omitempty"`
	Role           string    `bson:"role"`
	Name           string    `bson:"name"`
	Address        string    `bson:"address"`
	ProfilePicture string    `bson:"profile_picture"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func newUserDocument(u *entity.User) userDocument {
	return userDocument{
		ID:             u.ID.String(),
		Email:          u.Email,
		Password:       u.PasswordHash,
		Role:           string(u.Role),
		Name:           u.Name,
		Address:        u.Address,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (d userDocument) entity() (*entity.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("user document id %q: %w", d.ID, err)
	}
	u := &entity.User{
		Email:          d.Email,
		PasswordHash:   d.Password,
		Role:           entity.UserRole(d.Role),
		Name:           d.Name,
		Address:        d.Address,
		ProfilePicture: d.ProfilePicture,
	}
	u.ID = id
	u.CreatedAt = d.CreatedAt
	u.UpdatedAt = d.UpdatedAt
	return u, nil
}

type userMongoRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewUserMongoRepository(db *mongo.Database, log *zap.Logger) UserRepository {
	return &userMongoRepository{
		coll: db.Collection(database.UsersCollection),
		log:  log.With(zap.String("repository", "user_mongo")),
	}
}

func (r *userMongoRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.coll.InsertOne(ctx, newUserDocument(user))
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userMongoRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.entity()
}

func (r *userMongoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := r.findOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		r.log.Error("Failed to find user by ID", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}
	return user, nil
}

// FindByEmail expects email already normalized; documents store it lower-cased.
func (r *userMongoRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		r.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	return user, nil
}

func (r *userMongoRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Error("Failed to get all users", zap.Error(err))
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		u, err := doc.entity()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *userMongoRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}
	return count, nil
}

func (r *userMongoRepository) Update(ctx context.Context, user *entity.User) error {
	doc := newUserDocument(user)
	set := bson.M{
		"email":           doc.Email,
		"role":            doc.Role,
		"name":            doc.Name,
		"address":         doc.Address,
		"profile_picture": doc.ProfilePicture,
		"updated_at":      doc.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if doc.Password != nil {
		set["password"] = *doc.Password
	} else {
		update["$unset"] = bson.M{"password": ""}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("update user %s: %w", doc.ID, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", doc.ID))
		return fmt.Errorf("update user %s: %w", doc.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("update user %s: %w", doc.ID, ErrNotFound)
	}
	return nil
}
