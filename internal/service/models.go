package service

import (
	"net/http"

	"miniheureka/storefront/internal/view"
)

// Pre-existing image slots on the product page.
const (
	SecondaryImageSlots = 3
	CarouselSlots       = 5
)

// Notice is the visible fallback shown in place of a region that failed to load.
type Notice struct {
	Message string
	Status  int
}

type NavLink struct {
	Title  string
	Href   string
	Active bool
}

type Tile struct {
	Title  string
	ImgURL string
	Href   string
}

type IndexView struct {
	Nav    []NavLink
	Tiles  []Tile
	Notice *Notice
}

func (v *IndexView) Status() int {
	if v.Notice != nil {
		return v.Notice.Status
	}
	return http.StatusOK
}

type ProductCard struct {
	Title       string
	Description string
	ImgURL      string
	PriceRange  string
	Href        string
}

type CategoryView struct {
	CategoryID  int
	Title       string
	Nav         []NavLink
	NavNotice   *Notice
	Cards       []ProductCard
	CardsNotice *Notice
	Pagination  *view.Pagination
	PageLinks   []view.PageLink
}

// Status reflects the product region; a broken side nav alone still serves the page.
func (v *CategoryView) Status() int {
	if v.CardsNotice != nil {
		return v.CardsNotice.Status
	}
	return http.StatusOK
}

type OfferCard struct {
	ShopName string
	URL      string
	Price    string
	Visible  bool
}

type ProductView struct {
	ProductID     int
	Title         string
	CategoryTitle string
	CategoryHref  string

	Description           string
	ShortDescription      string
	DescriptionToggle     view.DescriptionToggle
	DescriptionToggleHref string

	MainImage       string
	SecondaryImages []view.Slot
	CarouselImages  []view.Slot

	Offers           []OfferCard
	OffersToggle     view.OfferToggle
	OffersToggleHref string
}

// ErrorView is rendered when a whole page cannot be built.
type ErrorView struct {
	Notice Notice
}
