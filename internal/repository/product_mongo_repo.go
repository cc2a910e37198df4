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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

// withoutPhoto keeps image bytes out of every read this subsystem makes.
var withoutPhoto = bson.M{"photo": 0}

type mongoProductRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoProductRepository(db *mongo.Database, logger *logrus.Logger) domain.ProductRepository {
	return &mongoProductRepository{
		coll: db.Collection(productsCollection),
		log:  logger,
	}
}

func (r *mongoProductRepository) List(ctx context.Context, limit int64) ([]domain.Product, error) {
	opts := options.Find().
		SetProjection(withoutPhoto).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Errorf("Failed to query products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		r.log.Errorf("Failed to decode products: %v", err)
		return nil, fmt.Errorf("error decoding products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (r *mongoProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	opts := options.FindOne().SetProjection(withoutPhoto)

	var product domain.Product
	err := r.coll.FindOne(ctx, bson.M{"slug": slug}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Product with slug %q not found", slug)
			return nil, domain.ErrProductNotFound
		}
		r.log.Errorf("Failed to get product by slug %q: %v", slug, err)
		return nil, fmt.Errorf("could not retrieve product: %w", err)
	}
	return &product, nil
}

func (r *mongoProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	opts := options.Find().SetProjection(withoutPhoto)
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		r.log.Errorf("Failed to query products by ids: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		r.log.Errorf("Failed to decode products by ids: %v", err)
		return nil, fmt.Errorf("error decoding products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
