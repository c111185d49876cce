package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"miniheureka/storefront/internal/domain"
	"miniheureka/storefront/internal/render"
	"miniheureka/storefront/internal/service"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCatalog struct {
	down bool
}

func (m *memCatalog) GetCategories(context.Context) ([]domain.Category, error) {
	if m.down {
		return nil, &domain.NetworkError{Endpoint: domain.EndpointCategories, Err: errors.New("connection refused")}
	}
	return []domain.Category{
		{Title: "Phones", ImgURL: "phones.png", ProdCount: 3},
		{Title: "Laptops", ImgURL: "laptops.png", ProdCount: 12},
	}, nil
}

func (m *memCatalog) GetCategoryPage(_ context.Context, categoryID, page int) (*domain.CategoryPage, error) {
	if categoryID != 2 {
		return nil, &domain.NetworkError{Endpoint: domain.EndpointCategoryPage, StatusCode: 404, Err: domain.ErrNotFound}
	}
	products := make([]domain.ProductSummary, 0, 5)
	for i := 1; i <= 5; i++ {
		id := (page-1)*5 + i
		products = append(products, domain.ProductSummary{
			ProductID: id,
			Title:     fmt.Sprintf("Laptop %d", id),
			MinPrice:  decimal.NewFromInt(100),
			MaxPrice:  decimal.NewFromInt(200),
		})
	}
	return &domain.CategoryPage{ProdCount: 12, HasCount: true, Products: products}, nil
}

func (m *memCatalog) GetProduct(_ context.Context, productID int) (*domain.ProductDetail, error) {
	if productID != 7 {
		return nil, &domain.NetworkError{Endpoint: domain.EndpointProduct, StatusCode: 404, Err: domain.ErrNotFound}
	}
	detail := &domain.ProductDetail{Info: domain.ProductInfo{
		Title:         "Laptop 7",
		CategoryID:    2,
		CategoryTitle: "Laptops",
		Description:   strings.Repeat("d", 300),
		ImgURL:        "l7.png",
	}}
	for i := 1; i <= 5; i++ {
		detail.Offers = append(detail.Offers, domain.Offer{
			URL:    fmt.Sprintf("http://randomEshop%d.cz/l7", i),
			Price:  decimal.NewFromInt(int64(1000 + i)),
			ImgURL: fmt.Sprintf("o%d.png", i),
		})
	}
	return detail, nil
}

func newTestRouter(t *testing.T, catalog *memCatalog, checks map[string]Checker) http.Handler {
	t.Helper()
	renderer, err := render.New()
	require.NoError(t, err)

	health := NewHealth()
	for name, c := range checks {
		health.Register(name, c)
	}
	pages := NewPages(service.NewStorefront(catalog), renderer)
	return NewRouter(pages, health, 5*time.Second)
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func TestPages_Index(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)

	for _, target := range []string{"/", "/index.html"} {
		rec, doc := get(t, h, target)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, doc.Find("#tiles-container .card").Length())
		href, _ := doc.Find("#side-nav a").Eq(1).Attr("href")
		assert.Equal(t, "/category.html?id=2&page=1", href)
	}
}

func TestPages_IndexCatalogDown(t *testing.T) {
	h := newTestRouter(t, &memCatalog{down: true}, nil)

	rec, doc := get(t, h, "/")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 1, doc.Find(".notice").Length())
	assert.Equal(t, 0, doc.Find("#tiles-container .card").Length())
}

func TestPages_CategoryPagination(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)

	rec, doc := get(t, h, "/category.html?id=2&page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, doc.Find("#cards-container .card").Length())
	assert.Equal(t, "Laptops", doc.Find("#v-pills-tab a.active").Text())

	links := map[string]string{}
	doc.Find("#pagination-container a").Each(func(_ int, s *goquery.Selection) {
		links[s.Text()], _ = s.Attr("href")
	})
	assert.Equal(t, "/category.html?id=2&page=1", links["<<"])
	assert.Equal(t, "/category.html?id=2&page=3", links[">>"])
	assert.Equal(t, "2", doc.Find("#pagination-container li.active a").Text())
}

func TestPages_CategoryBadPageFallsBackToFirst(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)

	rec, doc := get(t, h, "/category.html?id=2&page=abc")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", doc.Find("#pagination-container li.active a").Text())
}

func TestPages_CategoryInvalidID(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)

	for _, target := range []string{"/category.html", "/category.html?id=x", "/category.html?id=0"} {
		rec, _ := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestPages_CategoryUnknown(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)

	rec, doc := get(t, h, "/category.html?id=9")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 2, doc.Find("#v-pills-tab a").Length())
	assert.Equal(t, 1, doc.Find(".notice").Length())
}

func TestPages_ProductToggles(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)

	rec, doc := get(t, h, "/product.html?id=7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Laptop 7", doc.Find("#product-name").Text())
	assert.Equal(t, 2, doc.Find("#offers-container li[hidden]").Length())
	href, _ := doc.Find("#offers-visibility").Attr("href")
	assert.Equal(t, "/product.html?id=7&offers=all", href)

	rec, doc = get(t, h, href)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, doc.Find("#offers-container li[hidden]").Length())
	_, hidden := doc.Find("#description").Attr("hidden")
	assert.True(t, hidden)

	rec, doc = get(t, h, "/product.html?id=7&desc=full")
	require.Equal(t, http.StatusOK, rec.Code)
	_, hidden = doc.Find("#description").Attr("hidden")
	assert.False(t, hidden)
	_, hidden = doc.Find("#short-description").Attr("hidden")
	assert.True(t, hidden)
}

func TestPages_ProductNotFound(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)

	rec, doc := get(t, h, "/product.html?id=8")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, doc.Find(".notice").Length())
}

func TestRouter_UnknownPath(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)

	rec, _ := get(t, h, "/nope.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Static(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".tile-img")
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, map[string]Checker{
		"cache": func(context.Context) error { return errors.New("redis down") },
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis down")
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, &memCatalog{}, nil)
	get(t, h, "/index.html")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storefront_http_requests_total{method="GET",path="/index.html",status="200"}`)
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
