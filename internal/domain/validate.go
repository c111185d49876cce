package domain

import "fmt"

// Endpoint names used in errors, logs and metrics labels.
const (
	EndpointCategories   = "categories"
	EndpointCategoryPage = "category_page"
	EndpointProduct      = "product"
)

// MaxProdCount is the largest product count accepted from the catalog.
const MaxProdCount = 10000

// ValidateCategories checks every category carries a title and a plausible product count.
func ValidateCategories(categories []Category) error {
	for i, c := range categories {
		if c.Title == "" {
			return &DataShapeError{Endpoint: EndpointCategories, Reason: fmt.Sprintf("category %d has no title", i+1)}
		}
		if c.ProdCount < 0 || c.ProdCount > MaxProdCount {
			return &DataShapeError{Endpoint: EndpointCategories, Reason: fmt.Sprintf("category %d has prodCount %d", i+1, c.ProdCount)}
		}
	}
	return nil
}

// ValidateCategoryPage checks the product cards of one page.
func ValidateCategoryPage(page *CategoryPage) error {
	if page.HasCount && (page.ProdCount < 0 || page.ProdCount > MaxProdCount) {
		return &DataShapeError{Endpoint: EndpointCategoryPage, Reason: fmt.Sprintf("prodCount %d out of range", page.ProdCount)}
	}
	for i, p := range page.Products {
		if p.Title == "" {
			return &DataShapeError{Endpoint: EndpointCategoryPage, Reason: fmt.Sprintf("product %d has no title", i)}
		}
	}
	return nil
}

// ValidateProductDetail checks the product head and that every offer links somewhere.
func ValidateProductDetail(detail *ProductDetail) error {
	if detail.Info.Title == "" {
		return &DataShapeError{Endpoint: EndpointProduct, Reason: "product has no title"}
	}
	for i, o := range detail.Offers {
		if o.URL == "" {
			return &DataShapeError{Endpoint: EndpointProduct, Reason: fmt.Sprintf("offer %d has no url", i)}
		}
	}
	return nil
}

// CategoryRef resolves the id used in links for the category at zero-based position idx.
// An explicit categoryId wins, otherwise the 1-based position is the id.
func CategoryRef(c Category, idx int) int {
	if c.CategoryID > 0 {
		return c.CategoryID
	}
	return idx + 1
}
