package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique index on name.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_name_unique"),
	})
	if err != nil {
		return domain.NewStorageError("create index", err)
	}
	return nil
}

type userDocument struct {
	Name      string    `bson:"name"`
	Password  string    `bson:"password"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDocument(u *domain.User) userDocument {
	return userDocument{
		Name:      u.Name,
		Password:  u.PasswordHash,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, toDocument(user)); err != nil {
		return domain.NewStorageError("insert user", err)
	}
	return nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStorageError("find user", err)
	}
	return doc.toDomain(), nil
}
