package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog document. The Photo field holds the raw image
// bytes and is excluded from every projection this subsystem returns;
// repositories never load it unless explicitly asked.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    primitive.ObjectID `bson:"category" json:"category"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Photo       *Photo             `bson:"photo,omitempty" json:"-"`
	Shipping    bool               `bson:"shipping" json:"shipping"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type Photo struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"contentType"`
}

// ProductRepository is the read-only catalog surface consumed by the
// order workflow and the storefront listing endpoints. Catalog
// maintenance lives elsewhere.
type ProductRepository interface {
	// List returns up to limit products without photos, newest first.
	List(ctx context.Context, limit int64) ([]Product, error)
	// GetBySlug returns a single product without its photo, or
	// ErrProductNotFound.
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	// FindByIDs returns the products matching ids, without photos.
	// Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error)
}

type CatalogUseCase interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, slug string) (*Product, error)
}
