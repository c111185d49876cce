package client

import (
	"encoding/json"

	"miniheureka/storefront/internal/domain"
	"miniheureka/storefront/internal/view"

	log "github.com/sirupsen/logrus"
)

func decode[T any](endpoint string, data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, &domain.DataShapeError{Endpoint: endpoint, Reason: err.Error()}
	}
	return v, nil
}

func decodeCategories(data []byte) ([]domain.Category, error) {
	categories, err := decode[[]domain.Category](domain.EndpointCategories, data)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateCategories(categories); err != nil {
		return nil, err
	}

	log.Debugf("Decoded %d categories", len(categories))
	return categories, nil
}

func decodeCategoryPage(data []byte) (*domain.CategoryPage, error) {
	page, err := decode[domain.CategoryPage](domain.EndpointCategoryPage, data)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateCategoryPage(&page); err != nil {
		return nil, err
	}

	if len(page.Products) > view.PageSize {
		log.Warnf("Catalog returned %d products for one page, keeping %d", len(page.Products), view.PageSize)
		page.Products = page.Products[:view.PageSize]
	}

	return &page, nil
}

func decodeProduct(data []byte) (*domain.ProductDetail, error) {
	detail, err := decode[domain.ProductDetail](domain.EndpointProduct, data)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateProductDetail(&detail); err != nil {
		return nil, err
	}

	return &detail, nil
}
