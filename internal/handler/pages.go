package handler

import (
	"net/http"
	"strconv"

	"miniheureka/storefront/internal/render"
	"miniheureka/storefront/internal/service"
	"miniheureka/storefront/internal/view"

	log "github.com/sirupsen/logrus"
)

type Pages struct {
	storefront *service.Storefront
	renderer   render.Renderer
}

func NewPages(storefront *service.Storefront, renderer render.Renderer) *Pages {
	return &Pages{
		storefront: storefront,
		renderer:   renderer,
	}
}

func (p *Pages) Index(w http.ResponseWriter, r *http.Request) {
	page := p.storefront.IndexPage(r.Context())
	p.renderer.Render(w, page.Status(), render.PageIndex, page)
}

func (p *Pages) Category(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	categoryID, ok := parseID(q.Get("id"))
	if !ok {
		p.invalid(w, "id")
		return
	}
	pageNumber := view.ParsePage(q.Get("page"))

	page := p.storefront.CategoryPage(r.Context(), categoryID, pageNumber)
	p.renderer.Render(w, page.Status(), render.PageCategory, page)
}

func (p *Pages) Product(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	productID, ok := parseID(q.Get("id"))
	if !ok {
		p.invalid(w, "id")
		return
	}

	page, err := p.storefront.ProductPage(r.Context(), productID, service.ParseProductState(q))
	if err != nil {
		log.Errorf("❌ Failed to build product page: %v", err)
		fallback := service.ErrorPage(err)
		p.renderer.Render(w, fallback.Notice.Status, render.PageError, fallback)
		return
	}

	p.renderer.Render(w, http.StatusOK, render.PageProduct, page)
}

func (p *Pages) NotFound(w http.ResponseWriter, _ *http.Request) {
	page := &service.ErrorView{Notice: service.Notice{
		Message: "Požadovaná stránka neexistuje.",
		Status:  http.StatusNotFound,
	}}
	p.renderer.Render(w, http.StatusNotFound, render.PageError, page)
}

func (p *Pages) invalid(w http.ResponseWriter, param string) {
	page := service.InvalidRequest(param)
	p.renderer.Render(w, page.Notice.Status, render.PageError, page)
}

func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
