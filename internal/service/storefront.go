package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"miniheureka/storefront/internal/client"
	"miniheureka/storefront/internal/domain"
	"miniheureka/storefront/internal/view"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// ProductState is the toggle state of a product page, carried in its query string.
type ProductState struct {
	OffersExpanded      bool
	DescriptionExpanded bool
}

// ParseProductState reads offers=all and desc=full.
func ParseProductState(q url.Values) ProductState {
	return ProductState{
		OffersExpanded:      q.Get("offers") == "all",
		DescriptionExpanded: q.Get("desc") == "full",
	}
}

// Href is the product page url for productID in this state.
func (s ProductState) Href(productID int) string {
	q := url.Values{}
	q.Set("id", strconv.Itoa(productID))
	if s.OffersExpanded {
		q.Set("offers", "all")
	}
	if s.DescriptionExpanded {
		q.Set("desc", "full")
	}
	return "/product.html?" + q.Encode()
}

type Storefront struct {
	client client.CatalogClient
}

func NewStorefront(client client.CatalogClient) *Storefront {
	return &Storefront{
		client: client,
	}
}

func (s *Storefront) IndexPage(ctx context.Context) *IndexView {
	page := &IndexView{}

	categories, err := s.client.GetCategories(ctx)
	if err != nil {
		log.Errorf("❌ Failed to load categories for index: %v", err)
		page.Notice = noticeFor(err)
		return page
	}

	page.Nav = navLinks(categories, 0)
	page.Tiles = make([]Tile, 0, len(categories))
	for i, c := range categories {
		page.Tiles = append(page.Tiles, Tile{
			Title:  c.Title,
			ImgURL: view.ImageOrPlaceholder(c.ImgURL),
			Href:   view.CategoryHref(domain.CategoryRef(c, i), 1),
		})
	}

	return page
}

// CategoryPage loads the side nav and one page of product cards concurrently.
// Each region falls back to a notice on its own failure.
func (s *Storefront) CategoryPage(ctx context.Context, categoryID, pageNumber int) *CategoryView {
	page := &CategoryView{CategoryID: categoryID}

	var (
		categories  []domain.Category
		productPage *domain.CategoryPage
		catErr      error
		prodErr     error
	)

	errGroup := new(errgroup.Group)
	errGroup.Go(func() error {
		categories, catErr = s.client.GetCategories(ctx)
		return nil
	})
	errGroup.Go(func() error {
		productPage, prodErr = s.client.GetCategoryPage(ctx, categoryID, pageNumber)
		return nil
	})
	_ = errGroup.Wait()

	var current *domain.Category
	if catErr != nil {
		log.Errorf("❌ Failed to load categories for category %d: %v", categoryID, catErr)
		page.NavNotice = noticeFor(catErr)
	} else {
		page.Nav = navLinks(categories, categoryID)
		current = findCategory(categories, categoryID)
		if current != nil {
			page.Title = current.Title
		}
	}

	if prodErr != nil {
		log.Errorf("❌ Failed to load page %d of category %d: %v", pageNumber, categoryID, prodErr)
		page.CardsNotice = noticeFor(prodErr)
		page.Pagination = view.NewPagination(categoryID, 0, pageNumber)
		page.PageLinks = page.Pagination.Links()
		return page
	}

	page.Cards = make([]ProductCard, 0, len(productPage.Products))
	for _, p := range productPage.Products {
		page.Cards = append(page.Cards, ProductCard{
			Title:       p.Title,
			Description: p.Description,
			ImgURL:      view.ImageOrPlaceholder(p.ImgURL),
			PriceRange:  fmt.Sprintf("%s - %s", p.MinPrice.String(), p.MaxPrice.String()),
			Href:        view.ProductHref(p.ProductID),
		})
	}

	page.Pagination = view.NewPagination(categoryID, prodCount(productPage, current, pageNumber), pageNumber)
	page.PageLinks = page.Pagination.Links()

	log.Debugf("Category %d page %d: %d cards, %d pages", categoryID, pageNumber, len(page.Cards), page.Pagination.NumOfPages)
	return page
}

// ProductPage builds the detail page. Unlike the listing pages it has a single
// data source, so a failed lookup fails the whole page.
func (s *Storefront) ProductPage(ctx context.Context, productID int, state ProductState) (*ProductView, error) {
	detail, err := s.client.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", productID, err)
	}

	info := detail.Info
	gallery := view.BuildGallery(info.ImgURL, detail.OfferImages())

	page := &ProductView{
		ProductID:        productID,
		Title:            info.Title,
		CategoryTitle:    info.CategoryTitle,
		CategoryHref:     categoryHref(info.CategoryID),
		Description:      info.Description,
		ShortDescription: view.ShortDescription(info.Description),
		MainImage:        view.ImageOrPlaceholder(gallery[0]),
		SecondaryImages:  view.FillSlots(gallery, 1, SecondaryImageSlots),
		CarouselImages:   view.FillSlots(gallery, 0, CarouselSlots),
	}

	page.DescriptionToggle = view.DescriptionToggle{Expanded: state.DescriptionExpanded}
	next := state
	next.DescriptionExpanded = !next.DescriptionExpanded
	page.DescriptionToggleHref = next.Href(productID)

	page.OffersToggle = view.OfferToggle{Total: len(detail.Offers), Expanded: state.OffersExpanded}
	next = state
	next.OffersExpanded = !next.OffersExpanded
	page.OffersToggleHref = next.Href(productID)

	visible := page.OffersToggle.Visibility()
	page.Offers = make([]OfferCard, 0, len(detail.Offers))
	for i, o := range detail.Offers {
		page.Offers = append(page.Offers, OfferCard{
			ShopName: view.ShopName(o.URL),
			URL:      o.URL,
			Price:    o.Price.String(),
			Visible:  visible[i],
		})
	}

	return page, nil
}

// ErrorPage turns a whole-page failure into the fallback view.
func ErrorPage(err error) *ErrorView {
	return &ErrorView{Notice: *noticeFor(err)}
}

// InvalidRequest is the fallback view for a malformed id parameter.
func InvalidRequest(param string) *ErrorView {
	return &ErrorView{Notice: Notice{
		Message: fmt.Sprintf("Neplatný parametr %q.", param),
		Status:  http.StatusBadRequest,
	}}
}

func navLinks(categories []domain.Category, activeID int) []NavLink {
	links := make([]NavLink, 0, len(categories))
	for i, c := range categories {
		id := domain.CategoryRef(c, i)
		links = append(links, NavLink{
			Title:  c.Title,
			Href:   view.CategoryHref(id, 1),
			Active: id == activeID,
		})
	}
	return links
}

func findCategory(categories []domain.Category, categoryID int) *domain.Category {
	for i := range categories {
		if domain.CategoryRef(categories[i], i) == categoryID {
			return &categories[i]
		}
	}
	return nil
}

// prodCount prefers the count on the page response, then the category listing,
// and otherwise assumes nothing exists past the products seen so far.
func prodCount(page *domain.CategoryPage, category *domain.Category, pageNumber int) int {
	if page.HasCount {
		return page.ProdCount
	}
	if category != nil && category.ProdCount > 0 {
		return category.ProdCount
	}
	return (pageNumber-1)*view.PageSize + len(page.Products)
}

// categoryHref links a product back to its category, or to the index when the
// product response names no category.
func categoryHref(categoryID int) string {
	if categoryID < 1 {
		return "/index.html"
	}
	return view.CategoryHref(categoryID, 1)
}

func noticeFor(err error) *Notice {
	switch {
	case domain.IsNotFound(err):
		return &Notice{Message: "Požadovaná stránka neexistuje.", Status: http.StatusNotFound}
	case domain.IsDataShape(err):
		return &Notice{Message: "Katalog vrátil neplatná data.", Status: http.StatusBadGateway}
	case domain.IsNetwork(err):
		return &Notice{Message: "Katalog je dočasně nedostupný.", Status: http.StatusBadGateway}
	default:
		return &Notice{Message: "Stránku se nepodařilo načíst.", Status: http.StatusInternalServerError}
	}
}
