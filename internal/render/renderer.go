package render

import (
	"sort"

	"perfume-shop-backend/internal/models"
	"perfume-shop-backend/pkg/logger"
)

// Renderer is the single code path turning a persisted layout into page
// blocks. The admin preview and the live storefront both go through it, so
// the two cannot diverge in behavior. Rendering is read-only and safe for
// concurrent use.
type Renderer struct {
	registry *Registry
	sanitize func(string) string
}

func New(sanitize func(string) string) *Renderer {
	if sanitize == nil {
		sanitize = func(s string) string { return s }
	}

	r := &Renderer{
		registry: NewRegistry(),
		sanitize: sanitize,
	}

	r.registry.MustRegister(models.SectionTypeProduct, renderProduct)
	r.registry.MustRegister(models.SectionTypeImage, renderImage)
	r.registry.MustRegister(models.SectionTypeBanner, renderImage)
	r.registry.MustRegister(models.SectionTypeVideo, renderVideo)
	r.registry.MustRegister(models.SectionTypeText, r.renderText)
	r.registry.MustRegister(models.SectionTypeGallery, renderGallery)

	return r
}

// Render produces the page's blocks in position order. An absent or empty
// layout is an expected state and yields a single fallback block.
func (r *Renderer) Render(layout *models.Layout, products map[string]models.ResolvedProduct) []Block {
	if layout == nil || len(layout.Sections) == 0 {
		return []Block{{
			Type: BlockTypeFallback,
			Data: FallbackData{Message: "This page has not been customized yet."},
		}}
	}

	// The editor keeps positions dense and sorted, but stored data is not
	// trusted to arrive that way.
	sections := make([]models.Section, len(layout.Sections))
	copy(sections, layout.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})

	blocks := make([]Block, 0, len(sections))
	for _, section := range sections {
		renderer, ok := r.registry.Get(section.Type)
		if !ok {
			logger.Warn("Skipping section with unknown type", map[string]interface{}{
				"section_id": section.ID,
				"type":       string(section.Type),
				"page_id":    layout.PageID,
			})
			continue
		}

		block, ok := renderer(section, products)
		if !ok {
			continue
		}
		block.SectionID = section.ID
		blocks = append(blocks, block)
	}

	return blocks
}

// renderProduct resolves each referenced id against the product map and
// silently skips slots with no backing product. Duplicate ids are rendered
// as many times as they appear.
func renderProduct(section models.Section, products map[string]models.ResolvedProduct) (Block, bool) {
	content, ok := section.Content.(*models.ProductContent)
	if !ok {
		return Block{}, false
	}

	resolved := make([]models.ResolvedProduct, 0, len(content.ProductIDs))
	for _, id := range content.ProductIDs {
		if product, found := products[id]; found {
			resolved = append(resolved, product)
		}
	}

	return Block{
		Type: string(section.Type),
		Data: ProductGridData{
			Title:      content.Title,
			Subtitle:   content.Subtitle,
			ButtonText: content.ButtonText,
			ButtonLink: content.ButtonLink,
			Products:   resolved,
		},
	}, true
}

// renderImage serves both image and banner sections. An empty image URL
// degrades to the text fields alone instead of a broken image slot.
func renderImage(section models.Section, _ map[string]models.ResolvedProduct) (Block, bool) {
	content, ok := section.Content.(*models.ImageContent)
	if !ok {
		return Block{}, false
	}

	return Block{
		Type: string(section.Type),
		Data: ImageData{
			ImageURL:    content.ImageURL,
			Title:       content.Title,
			Subtitle:    content.Subtitle,
			Description: content.Description,
			ButtonText:  content.ButtonText,
			ButtonLink:  content.ButtonLink,
		},
	}, true
}

// renderVideo falls back to the thumbnail as a static poster when no video
// URL is set.
func renderVideo(section models.Section, _ map[string]models.ResolvedProduct) (Block, bool) {
	content, ok := section.Content.(*models.VideoContent)
	if !ok {
		return Block{}, false
	}

	data := VideoData{
		VideoURL:    content.VideoURL,
		Title:       content.Title,
		Subtitle:    content.Subtitle,
		Description: content.Description,
	}
	if content.VideoURL == "" {
		data.PosterURL = content.ThumbnailURL
	}

	return Block{Type: string(section.Type), Data: data}, true
}

func (r *Renderer) renderText(section models.Section, _ map[string]models.ResolvedProduct) (Block, bool) {
	content, ok := section.Content.(*models.TextContent)
	if !ok {
		return Block{}, false
	}

	return Block{
		Type: string(section.Type),
		Data: TextData{
			Title: content.Title,
			Body:  r.sanitize(content.Body),
		},
	}, true
}

// renderGallery dispatches each media item the same way standalone image
// and video sections are handled; items of any other kind are dropped.
func renderGallery(section models.Section, _ map[string]models.ResolvedProduct) (Block, bool) {
	content, ok := section.Content.(*models.GalleryContent)
	if !ok {
		return Block{}, false
	}

	items := make([]GalleryItem, 0, len(content.MediaItems))
	for _, item := range content.MediaItems {
		if item.Type != "image" && item.Type != "video" {
			continue
		}
		items = append(items, GalleryItem{
			Type:  item.Type,
			URL:   item.URL,
			Title: item.Title,
		})
	}

	return Block{
		Type: string(section.Type),
		Data: GalleryData{
			Title: content.Title,
			Items: items,
		},
	}, true
}
