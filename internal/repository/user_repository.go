package repository

import (
	"context"
	"errors"

	"cartalk/internal/domain/user"
	cartalk_errors "cartalk/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type MongoUserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{users: db.Collection("users")}
}

// Create inserts a new user. The unique index on email makes this the
// insert-if-absent step for registration: a duplicate key error means the
// email is already taken, even under concurrent registrations.
func (r *MongoUserRepository) Create(ctx context.Context, u *user.User) error {
	if _, err := r.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return cartalk_errors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (user.User, error) {
	var u user.User
	if err := r.users.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, cartalk_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
