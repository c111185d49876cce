package view

import (
	"net/url"
	"regexp"
)

// DefaultVisibleOffers is how many offers the collapsed list shows.
const DefaultVisibleOffers = 3

const (
	ShowMoreOffersLabel  = "Zobrazit další nabídky"
	ShowFewerOffersLabel = "Skrýt nabídky"
)

// ShowOffers returns per-offer visibility for total offers. n <= 0 reveals
// every offer, otherwise offers at index >= n are hidden. The toggle control is
// rendered after the offers and is not part of the result.
func ShowOffers(total, n int) []bool {
	visible := make([]bool, total)
	for i := range visible {
		visible[i] = n <= 0 || i < n
	}
	return visible
}

// OfferToggle is the "show more / show less" state of the offers list.
type OfferToggle struct {
	Total    int
	Expanded bool
}

func (t OfferToggle) Visibility() []bool {
	if t.Expanded {
		return ShowOffers(t.Total, 0)
	}
	return ShowOffers(t.Total, DefaultVisibleOffers)
}

func (t *OfferToggle) Toggle() {
	t.Expanded = !t.Expanded
}

func (t OfferToggle) Label() string {
	if t.Expanded {
		return ShowFewerOffersLabel
	}
	return ShowMoreOffersLabel
}

// Inert reports whether toggling cannot change which offers are visible.
func (t OfferToggle) Inert() bool {
	return t.Total <= DefaultVisibleOffers
}

var shopRegex = regexp.MustCompile(`^https?://randomEshop(\d+)\.cz[\w/]*`)

// ShopName derives the merchant label shown on an offer card.
func ShopName(offerURL string) string {
	if m := shopRegex.FindStringSubmatch(offerURL); len(m) > 1 {
		return "Obchod #" + m[1]
	}
	if u, err := url.Parse(offerURL); err == nil && u.Host != "" {
		return u.Host
	}
	return offerURL
}
