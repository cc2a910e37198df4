package usecase

import (
	"context"
	"testing"

	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListProducts(t *testing.T) {
	products := &fakeProductRepo{products: map[primitive.ObjectID]domain.Product{}}
	p := domain.Product{ID: primitive.NewObjectID(), Name: "Widget", Slug: "widget", Price: 10}
	products.products[p.ID] = p

	uc := NewCatalogUseCase(products, testLogger())

	got, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Widget", got[0].Name)
	assert.Nil(t, got[0].Photo, "listings never carry the binary photo payload")
}

func TestGetProduct(t *testing.T) {
	products := &fakeProductRepo{products: map[primitive.ObjectID]domain.Product{}}
	p := domain.Product{ID: primitive.NewObjectID(), Name: "Widget", Slug: "widget"}
	products.products[p.ID] = p

	uc := NewCatalogUseCase(products, testLogger())

	got, err := uc.GetProduct(context.Background(), "widget")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = uc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.GetProduct(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
