package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

type mongoOrderRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoOrderRepository(db *mongo.Database, logger *logrus.Logger) domain.OrderRepository {
	return &mongoOrderRepository{
		coll: db.Collection(ordersCollection),
		log:  logger,
	}
}

func (r *mongoOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = domain.StatusNotProcess
	}

	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		r.log.Errorf("Failed to insert order for buyer %s: %v", order.Buyer.Hex(), err)
		return fmt.Errorf("could not create order: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	r.log.Infof("Order %s created for buyer %s with %d products", order.ID.Hex(), order.Buyer.Hex(), len(order.Products))
	return nil
}

func (r *mongoOrderRepository) ListByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]domain.Order, error) {
	return r.list(ctx, bson.M{"buyer": buyer})
}

func (r *mongoOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, bson.M{})
}

// list returns orders matching filter, newest first. createdAt is the
// sole sort key; ties break arbitrarily.
func (r *mongoOrderRepository) list(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		r.log.Errorf("Failed to query orders (filter %v): %v", filter, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		r.log.Errorf("Failed to decode orders (filter %v): %v", filter, err)
		return nil, fmt.Errorf("error decoding orders: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	r.log.Debugf("Retrieved %d orders (filter %v)", len(orders), filter)
	return orders, nil
}

func (r *mongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) (*domain.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Order
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Order %s not found for status update", id.Hex())
			return nil, domain.ErrOrderNotFound
		}
		r.log.Errorf("Failed to update status for order %s: %v", id.Hex(), err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	r.log.Infof("Order %s status updated to '%s'", updated.ID.Hex(), updated.Status)
	return &updated, nil
}
