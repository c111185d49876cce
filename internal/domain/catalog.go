package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Category is one entry of the catalog root listing.
type Category struct {
	CategoryID int    `json:"categoryId,omitempty"` // Explicit id, 0 when the API omits it
	Title      string `json:"title"`
	ImgURL     string `json:"img_url"`
	ProdCount  int    `json:"prodCount,omitempty"` // Total products, when the listing carries it
}

// ProductSummary is a product card on a category page.
type ProductSummary struct {
	ProductID   int             `json:"productId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImgURL      string          `json:"img_url"`
	MinPrice    decimal.Decimal `json:"minPrice"`
	MaxPrice    decimal.Decimal `json:"maxPrice"`
}

// CategoryPage is one page of products plus the category's total product count.
type CategoryPage struct {
	ProdCount int              `json:"prodCount"`
	Products  []ProductSummary `json:"products"`

	// HasCount is false when the API answered with a bare product array.
	HasCount bool `json:"-"`
}

// UnmarshalJSON accepts both {"prodCount": n, "products": [...]} and a bare product array.
func (p *CategoryPage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []ProductSummary
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return err
		}
		*p = CategoryPage{Products: products}
		return nil
	}

	var raw struct {
		ProdCount *int             `json:"prodCount"`
		Products  []ProductSummary `json:"products"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	*p = CategoryPage{Products: raw.Products}
	if raw.ProdCount != nil {
		p.ProdCount = *raw.ProdCount
		p.HasCount = true
	}
	return nil
}

// ProductInfo is the head of a product detail response.
type ProductInfo struct {
	Title         string `json:"title"`
	CategoryID    int    `json:"categoryId"`
	CategoryTitle string `json:"categoryTitle"`
	Description   string `json:"description"`
	ImgURL        string `json:"img_url"`
}

// Offer is a single merchant listing for a product.
type Offer struct {
	URL    string          `json:"url"`
	Price  decimal.Decimal `json:"price"`
	ImgURL string          `json:"img_url,omitempty"`
}

// ProductDetail is the product detail response, a JSON 2-tuple [productInfo, offers].
type ProductDetail struct {
	Info   ProductInfo
	Offers []Offer
}

func (d *ProductDetail) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("product detail must be a 2-tuple, got %d elements", len(tuple))
	}

	var out ProductDetail
	if err := json.Unmarshal(tuple[0], &out.Info); err != nil {
		return fmt.Errorf("product info: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &out.Offers); err != nil {
		return fmt.Errorf("offers: %w", err)
	}

	*d = out
	return nil
}

// OfferImages returns the offers' image urls in order, empty where an offer has none.
func (d *ProductDetail) OfferImages() []string {
	imgs := make([]string, 0, len(d.Offers))
	for _, o := range d.Offers {
		imgs = append(imgs, o.ImgURL)
	}
	return imgs
}
