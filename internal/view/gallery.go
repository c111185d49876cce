package view

// PlaceholderImage stands in for offers that carry no image.
const PlaceholderImage = "/static/img/image-coming-soon.svg"

// MaxGallerySize caps the number of images shown for one product.
const MaxGallerySize = 10

// BuildGallery returns the title image followed by offer images in order.
// Empty offer images become PlaceholderImage before the duplicate check, offer
// images equal to the title image are skipped, and the result holds at most
// MaxGallerySize entries. Offer images are not deduplicated against each other.
func BuildGallery(titleImg string, offerImgs []string) []string {
	gallery := make([]string, 0, MaxGallerySize)
	gallery = append(gallery, titleImg)

	for _, img := range offerImgs {
		if len(gallery) == MaxGallerySize {
			break
		}
		if img == "" {
			img = PlaceholderImage
		}
		if img == titleImg {
			continue
		}
		gallery = append(gallery, img)
	}

	return gallery
}

// Slot is one pre-existing image position on the product page.
type Slot struct {
	Index int
	URL   string // empty leaves the slot unfilled
}

// FillSlots assigns gallery[offset:] to n slots positionally. Entries past the
// last slot are dropped and slots past the last entry stay empty.
func FillSlots(gallery []string, offset, n int) []Slot {
	slots := make([]Slot, n)
	for i := range slots {
		slots[i].Index = i
		if j := offset + i; j >= 0 && j < len(gallery) {
			slots[i].URL = gallery[j]
		}
	}
	return slots
}

// ImageOrPlaceholder is used for product cards whose image url is empty.
func ImageOrPlaceholder(url string) string {
	if url == "" {
		return PlaceholderImage
	}
	return url
}
