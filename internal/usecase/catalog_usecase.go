package usecase

import (
	"context"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

// productListLimit caps the storefront listing page.
const productListLimit = 12

var _ domain.CatalogUseCase = (*catalogUseCase)(nil)

type catalogUseCase struct {
	products domain.ProductRepository
	log      *logrus.Logger
}

func NewCatalogUseCase(products domain.ProductRepository, logger *logrus.Logger) domain.CatalogUseCase {
	return &catalogUseCase{products: products, log: logger}
}

func (uc *catalogUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := uc.products.List(ctx, productListLimit)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to list products: %v", err)
		return nil, err
	}
	uc.log.Debugf("Use Case: Retrieved %d products", len(products))
	return products, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		return nil, domain.ErrProductNotFound
	}
	product, err := uc.products.GetBySlug(ctx, slug)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to get product %q: %v", slug, err)
		return nil, err
	}
	return product, nil
}
