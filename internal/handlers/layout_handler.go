package handlers

import (
	"net/http"

	"perfume-shop-backend/internal/models"
	"perfume-shop-backend/internal/render"
	"perfume-shop-backend/internal/service"
	"perfume-shop-backend/pkg/logger"
	"perfume-shop-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var layoutSaves = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "shop_layout_saves_total",
	Help: "Number of persisted layout saves, by page.",
}, []string{"page_id"})

type LayoutHandler struct {
	layoutService  *service.LayoutService
	productService *service.ProductService
	renderer       *render.Renderer
}

func NewLayoutHandler(layoutService *service.LayoutService, productService *service.ProductService, renderer *render.Renderer) *LayoutHandler {
	return &LayoutHandler{
		layoutService:  layoutService,
		productService: productService,
		renderer:       renderer,
	}
}

// GetPages returns the static registry of customizable pages.
// GET /api/admin/layouts/pages
func (h *LayoutHandler) GetPages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pages": h.layoutService.GetPages()})
}

// GetAllLayouts lists every persisted layout ordered by page name.
// GET /api/admin/layouts
func (h *LayoutHandler) GetAllLayouts(c *gin.Context) {
	layouts, err := h.layoutService.GetAllLayouts()
	if err != nil {
		logger.Error(err, "Failed to list layouts", nil)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layouts": layouts})
}

// pageIDParam validates the :pageId URL parameter before it reaches the
// service layer. Malformed ids are rejected as bad requests rather than
// treated as unknown pages.
func pageIDParam(c *gin.Context) (string, bool) {
	id := c.Param("pageId")
	if !validator.ValidatePageID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page id"})
		return "", false
	}
	return id, true
}

// GetLayout returns the layout for one page, synthesizing an empty template
// when the page has never been saved.
// GET /api/admin/layouts/:pageId
func (h *LayoutHandler) GetLayout(c *gin.Context) {
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	layout, err := h.layoutService.GetLayoutForEdit(pageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// SaveLayout persists a full overwrite of one page's layout.
// PUT /api/admin/layouts/:pageId
func (h *LayoutHandler) SaveLayout(c *gin.Context) {
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	var req models.SaveLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	req.PageID = pageID

	layout, err := h.layoutService.SaveLayout(req)
	if err != nil {
		logger.Error(err, "Failed to save layout", map[string]interface{}{"page_id": req.PageID})
		respondError(c, err)
		return
	}

	layoutSaves.WithLabelValues(layout.PageID).Inc()
	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// AddSection appends a new section to a page's layout.
// POST /api/admin/layouts/:pageId/sections
func (h *LayoutHandler) AddSection(c *gin.Context) {
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	var req models.AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	layout, err := h.layoutService.AddSection(pageID, req)
	if err != nil {
		logger.Error(err, "Failed to add section", map[string]interface{}{"page_id": pageID})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// UpdateSection merges a partial content patch into an existing section.
// PUT /api/admin/layouts/:pageId/sections/:sectionId
func (h *LayoutHandler) UpdateSection(c *gin.Context) {
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}
	sectionID := c.Param("sectionId")

	var req models.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	layout, err := h.layoutService.UpdateSection(pageID, sectionID, req)
	if err != nil {
		logger.Error(err, "Failed to update section", map[string]interface{}{
			"page_id":    pageID,
			"section_id": sectionID,
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// MoveSection shifts a section one place up or down.
// POST /api/admin/layouts/:pageId/sections/:sectionId/move
func (h *LayoutHandler) MoveSection(c *gin.Context) {
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}
	sectionID := c.Param("sectionId")

	var req models.MoveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	layout, err := h.layoutService.MoveSection(pageID, sectionID, req.Direction)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// RemoveSection deletes a section from a page's layout.
// DELETE /api/admin/layouts/:pageId/sections/:sectionId
func (h *LayoutHandler) RemoveSection(c *gin.Context) {
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	layout, err := h.layoutService.RemoveSection(pageID, c.Param("sectionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// PreviewLayout renders the page through the same renderer the storefront
// uses, so the admin preview cannot drift from production output.
// GET /api/admin/layouts/:pageId/preview
func (h *LayoutHandler) PreviewLayout(c *gin.Context) {
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	layout, err := h.layoutService.GetLayoutForEdit(pageID)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := h.resolveLayoutProducts(layout)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blocks":       h.renderer.Render(layout, products),
		"preview_mode": true,
	})
}

func (h *LayoutHandler) resolveLayoutProducts(layout *models.Layout) (map[string]models.ResolvedProduct, error) {
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
