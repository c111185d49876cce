// Package view holds the storefront's view state: pagination, gallery,
// offer visibility and description toggling. Nothing here touches HTTP or templates.
package view

import (
	"fmt"
	"strconv"
)

// PageSize is the number of products shown on one category page.
const PageSize = 5

const (
	PrevLabel = "<<"
	NextLabel = ">>"
)

// MaxPages bounds the pagination bar regardless of the count the catalog reports.
const MaxPages = 2000

// NumOfPages returns ceil(prodCount / PageSize), at least one page and at most MaxPages.
func NumOfPages(prodCount int) int {
	if prodCount <= 0 {
		return 1
	}
	pages := prodCount / PageSize
	if prodCount%PageSize != 0 {
		pages++
	}
	return min(pages, MaxPages)
}

// ParsePage reads a page query value. Missing, malformed and non-positive values mean page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Pagination is the navigation state of one category listing.
type Pagination struct {
	CategoryID  int
	CurrentPage int
	NumOfPages  int
}

// PageLink is one entry of the rendered pagination bar.
type PageLink struct {
	Label  string
	Href   string
	Active bool
}

func NewPagination(categoryID, prodCount, currentPage int) *Pagination {
	if currentPage < 1 {
		currentPage = 1
	}
	return &Pagination{
		CategoryID:  categoryID,
		CurrentPage: currentPage,
		NumOfPages:  NumOfPages(prodCount),
	}
}

func (p *Pagination) PrevPage() int {
	if p.CurrentPage > 1 {
		return p.CurrentPage - 1
	}
	return p.CurrentPage
}

func (p *Pagination) NextPage() int {
	if p.CurrentPage < p.NumOfPages {
		return p.CurrentPage + 1
	}
	return p.CurrentPage
}

// Target returns the page a click on label leads to, without changing state.
// Unknown labels keep the current page.
func (p *Pagination) Target(label string) int {
	switch label {
	case PrevLabel:
		return p.PrevPage()
	case NextLabel:
		return p.NextPage()
	}

	page, err := strconv.Atoi(label)
	if err != nil || page < 1 {
		return p.CurrentPage
	}
	return page
}

// Click applies a click on the link labelled label and returns the new current page.
func (p *Pagination) Click(label string) int {
	p.CurrentPage = p.Target(label)
	return p.CurrentPage
}

// Labels lists the bar in render order: previous, every page number, next.
func (p *Pagination) Labels() []string {
	labels := make([]string, 0, p.NumOfPages+2)
	labels = append(labels, PrevLabel)
	for i := 1; i <= p.NumOfPages; i++ {
		labels = append(labels, strconv.Itoa(i))
	}
	return append(labels, NextLabel)
}

func (p *Pagination) Links() []PageLink {
	labels := p.Labels()
	links := make([]PageLink, 0, len(labels))
	for _, label := range labels {
		page := p.Target(label)
		links = append(links, PageLink{
			Label:  label,
			Href:   CategoryHref(p.CategoryID, page),
			Active: label != PrevLabel && label != NextLabel && page == p.CurrentPage,
		})
	}
	return links
}

// CategoryHref is the storefront url of one category page.
func CategoryHref(categoryID, page int) string {
	return fmt.Sprintf("/category.html?id=%d&page=%d", categoryID, page)
}

// ProductHref is the storefront url of a product detail page.
func ProductHref(productID int) string {
	return fmt.Sprintf("/product.html?id=%d", productID)
}
