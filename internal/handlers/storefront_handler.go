package handlers

import (
	"errors"
	"net/http"
	"time"

	"perfume-shop-backend/internal/models"
	"perfume-shop-backend/internal/pages"
	"perfume-shop-backend/internal/render"
	"perfume-shop-backend/internal/service"
	"perfume-shop-backend/pkg/cache"
	"perfume-shop-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var pageRenders = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "shop_page_renders_total",
	Help: "Number of storefront page renders, by page.",
}, []string{"page_id"})

const pageCacheTTL = 5 * time.Minute

// SiteMeta is the site identity attached to every rendered page.
type SiteMeta struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type StorefrontHandler struct {
	layoutService  *service.LayoutService
	productService *service.ProductService
	renderer       *render.Renderer
	cache          *cache.Cache
	site           SiteMeta
}

func NewStorefrontHandler(layoutService *service.LayoutService, productService *service.ProductService, renderer *render.Renderer, c *cache.Cache, site SiteMeta) *StorefrontHandler {
	return &StorefrontHandler{
		layoutService:  layoutService,
		productService: productService,
		renderer:       renderer,
		cache:          c,
		site:           site,
	}
}

type renderedPage struct {
	Path     string         `json:"path"`
	PageName string         `json:"page_name,omitempty"`
	Site     SiteMeta       `json:"site"`
	Blocks   []render.Block `json:"blocks"`
}

// GetPage renders a storefront page by its site-relative path. The path is
// resolved against the page registry before anything else: unregistered
// paths get the generic fallback and never touch the metric or the cache,
// so label values and cache keys stay bounded no matter what callers send.
// GET /api/storefront/page?path=/
func (h *StorefrontHandler) GetPage(c *gin.Context) {
	path := c.DefaultQuery("path", "/")

	info, registered := pages.LookupByPath(path)
	if !registered {
		c.JSON(http.StatusOK, renderedPage{
			Path:   path,
			Site:   h.site,
			Blocks: h.renderer.Render(nil, nil),
		})
		return
	}

	pageRenders.WithLabelValues(info.PageID).Inc()

	cacheKey := "storefront:page:" + info.PageID
	var cached renderedPage
	if err := h.cache.Get(cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	layout, err := h.layoutService.GetLayoutByPath(info.PagePath)
	if err != nil && !errors.Is(err, service.ErrLayoutNotFound) {
		logger.Error(err, "Failed to load layout for render", map[string]interface{}{"path": info.PagePath})
		respondError(c, err)
		return
	}

	products := map[string]models.ResolvedProduct{}
	if layout != nil {
		products, err = h.resolveProducts(layout)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	page := renderedPage{
		Path:     info.PagePath,
		PageName: info.PageName,
		Site:     h.site,
		Blocks:   h.renderer.Render(layout, products),
	}

	if err := h.cache.Set(cacheKey, page, pageCacheTTL); err != nil {
		logger.Debug("Failed to cache rendered page", map[string]interface{}{"page_id": info.PageID})
	}

	c.JSON(http.StatusOK, page)
}

// GetProducts lists the catalog for the public store page.
// GET /api/storefront/products
func (h *StorefrontHandler) GetProducts(c *gin.Context) {
	var cached []models.Product
	if err := h.cache.Get("products:all", &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"products": cached})
		return
	}

	products, err := h.productService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	_ = h.cache.Set("products:all", products, pageCacheTTL)
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns one product by its public id.
// GET /api/storefront/products/:id
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *StorefrontHandler) resolveProducts(layout *models.Layout) (map[string]models.ResolvedProduct, error) {
	var ids []string
	for _, section := range layout.Sections {
		if content, ok := section.Content.(*models.ProductContent); ok {
			ids = append(ids, content.ProductIDs...)
		}
	}
	if len(ids) == 0 {
		return map[string]models.ResolvedProduct{}, nil
	}
	return h.productService.ResolveByIDs(ids)
}
