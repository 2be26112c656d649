package render

import (
	"strings"
	"testing"

	"perfume-shop-backend/internal/models"
)

func testLayout(sections ...models.Section) *models.Layout {
	return &models.Layout{
		PageID:   "home",
		PageName: "Home",
		PagePath: "/",
		Sections: sections,
	}
}

func TestRender_EmptyLayoutYieldsFallback(t *testing.T) {
	r := New(nil)

	for _, layout := range []*models.Layout{nil, testLayout()} {
		blocks := r.Render(layout, nil)
		if len(blocks) != 1 {
			t.Fatalf("expected single fallback block, got %d", len(blocks))
		}
		if blocks[0].Type != BlockTypeFallback {
			t.Fatalf("expected fallback type, got %q", blocks[0].Type)
		}
		if _, ok := blocks[0].Data.(FallbackData); !ok {
			t.Fatalf("expected FallbackData, got %T", blocks[0].Data)
		}
	}
}

func TestRender_ProductGridSkipsUnresolvedIDs(t *testing.T) {
	r := New(nil)

	layout := testLayout(models.Section{
		ID:   "grid",
		Type: models.SectionTypeProduct,
		Content: &models.ProductContent{
			ProductIDs: []string{"a", "b", "c"},
			Title:      "Bestsellers",
		},
	})
	products := map[string]models.ResolvedProduct{
		"a": {ID: "a", Name: "Rose Absolue", PriceCents: 12900, InStock: true},
		"c": {ID: "c", Name: "Bois de Santal", PriceCents: 15900, InStock: true},
	}

	blocks := r.Render(layout, products)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	data, ok := blocks[0].Data.(ProductGridData)
	if !ok {
		t.Fatalf("expected ProductGridData, got %T", blocks[0].Data)
	}
	if len(data.Products) != 2 {
		t.Fatalf("expected 2 resolved products, got %d", len(data.Products))
	}
	if data.Products[0].ID != "a" || data.Products[1].ID != "c" {
		t.Fatalf("resolved products out of order: %+v", data.Products)
	}
}

func TestRender_DuplicateProductIDsRenderTwice(t *testing.T) {
	r := New(nil)

	layout := testLayout(models.Section{
		ID:      "grid",
		Type:    models.SectionTypeProduct,
		Content: &models.ProductContent{ProductIDs: []string{"a", "a"}},
	})
	products := map[string]models.ResolvedProduct{
		"a": {ID: "a", Name: "Rose Absolue"},
	}

	blocks := r.Render(layout, products)
	data := blocks[0].Data.(ProductGridData)
	if len(data.Products) != 2 {
		t.Fatalf("duplicate id should occupy two slots, got %d", len(data.Products))
	}
}

func TestRender_UnknownTypeIsSkipped(t *testing.T) {
	r := New(nil)

	layout := testLayout(
		models.Section{ID: "s1", Type: models.SectionTypeText, Position: 0, Content: &models.TextContent{Body: "hello"}},
		models.Section{ID: "s2", Type: "carousel3d", Position: 1, Content: models.RawContent(`{"speed":3}`)},
		models.Section{ID: "s3", Type: models.SectionTypeBanner, Position: 2, Content: &models.ImageContent{Title: "Sale"}},
	)

	blocks := r.Render(layout, nil)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks around the skipped section, got %d", len(blocks))
	}
	if blocks[0].SectionID != "s1" || blocks[1].SectionID != "s3" {
		t.Fatalf("wrong sections rendered: %+v", blocks)
	}
}

func TestRender_SortsByPosition(t *testing.T) {
	r := New(nil)

	layout := testLayout(
		models.Section{ID: "late", Type: models.SectionTypeText, Position: 5, Content: &models.TextContent{Body: "late"}},
		models.Section{ID: "early", Type: models.SectionTypeText, Position: 1, Content: &models.TextContent{Body: "early"}},
	)

	blocks := r.Render(layout, nil)
	if blocks[0].SectionID != "early" || blocks[1].SectionID != "late" {
		t.Fatalf("blocks not emitted in position order: %+v", blocks)
	}
}

func TestRender_BannerSharesImageShape(t *testing.T) {
	r := New(nil)

	layout := testLayout(
		models.Section{ID: "b", Type: models.SectionTypeBanner, Position: 0, Content: &models.ImageContent{ImageURL: "/uploads/hero.jpg"}},
		models.Section{ID: "i", Type: models.SectionTypeImage, Position: 1, Content: &models.ImageContent{Title: "No image yet"}},
	)

	blocks := r.Render(layout, nil)
	if blocks[0].Type != "banner" || blocks[1].Type != "image" {
		t.Fatalf("type tags not preserved: %+v", blocks)
	}

	// An image section with no URL still renders its text fields.
	data := blocks[1].Data.(ImageData)
	if data.ImageURL != "" || data.Title != "No image yet" {
		t.Fatalf("empty image url should degrade to text: %+v", data)
	}
}

func TestRender_VideoWithoutURLUsesThumbnailAsPoster(t *testing.T) {
	r := New(nil)

	layout := testLayout(
		models.Section{ID: "v1", Type: models.SectionTypeVideo, Position: 0, Content: &models.VideoContent{
			VideoURL: "/uploads/campaign.mp4", ThumbnailURL: "/uploads/thumb.jpg",
		}},
		models.Section{ID: "v2", Type: models.SectionTypeVideo, Position: 1, Content: &models.VideoContent{
			ThumbnailURL: "/uploads/thumb.jpg",
		}},
	)

	blocks := r.Render(layout, nil)

	playable := blocks[0].Data.(VideoData)
	if playable.VideoURL == "" || playable.PosterURL != "" {
		t.Fatalf("playable video should not carry a poster: %+v", playable)
	}

	poster := blocks[1].Data.(VideoData)
	if poster.VideoURL != "" || poster.PosterURL != "/uploads/thumb.jpg" {
		t.Fatalf("missing video url should fall back to poster: %+v", poster)
	}
}

func TestRender_TextBodyIsSanitized(t *testing.T) {
	r := New(strings.ToUpper)

	layout := testLayout(models.Section{
		ID: "t", Type: models.SectionTypeText,
		Content: &models.TextContent{Title: "About", Body: "hand-blended in grasse"},
	})

	data := r.Render(layout, nil)[0].Data.(TextData)
	if data.Body != "HAND-BLENDED IN GRASSE" {
		t.Fatalf("sanitizer not applied to body: %q", data.Body)
	}
	if data.Title != "About" {
		t.Fatalf("title should pass through untouched: %q", data.Title)
	}
}

func TestRender_GalleryDropsUnknownItemTypes(t *testing.T) {
	r := New(nil)

	layout := testLayout(models.Section{
		ID: "g", Type: models.SectionTypeGallery,
		Content: &models.GalleryContent{
			Title: "Campaign",
			MediaItems: []models.MediaItem{
				{Type: "image", URL: "/uploads/1.jpg"},
				{Type: "hologram", URL: "/uploads/2.obj"},
				{Type: "video", URL: "/uploads/3.mp4", Title: "Backstage"},
			},
		},
	})

	data := r.Render(layout, nil)[0].Data.(GalleryData)
	if len(data.Items) != 2 {
		t.Fatalf("expected 2 gallery items, got %d", len(data.Items))
	}
	if data.Items[0].Type != "image" || data.Items[1].Type != "video" {
		t.Fatalf("unexpected gallery items: %+v", data.Items)
	}
}
