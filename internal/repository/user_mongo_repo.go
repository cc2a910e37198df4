package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type mongoUserRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoUserRepository(db *mongo.Database, logger *logrus.Logger) domain.UserRepository {
	return &mongoUserRepository{
		coll: db.Collection(usersCollection),
		log:  logger,
	}
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("User %s not found", id.Hex())
			return nil, domain.ErrUserNotFound
		}
		r.log.Errorf("Failed to get user %s: %v", id.Hex(), err)
		return nil, fmt.Errorf("could not retrieve user: %w", err)
	}
	return &user, nil
}
