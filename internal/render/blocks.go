package render

import "perfume-shop-backend/internal/models"

// Block is one rendered unit of a storefront page, emitted in position
// order. Data carries the type-specific view payload.
type Block struct {
	SectionID string      `json:"section_id,omitempty"`
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
}

const BlockTypeFallback = "fallback"

type FallbackData struct {
	Message string `json:"message"`
}

type ProductGridData struct {
	Title      string                   `json:"title,omitempty"`
	Subtitle   string                   `json:"subtitle,omitempty"`
	ButtonText string                   `json:"button_text,omitempty"`
	ButtonLink string                   `json:"button_link,omitempty"`
	Products   []models.ResolvedProduct `json:"products"`
}

type ImageData struct {
	ImageURL    string `json:"image_url,omitempty"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	ButtonText  string `json:"button_text,omitempty"`
	ButtonLink  string `json:"button_link,omitempty"`
}

type VideoData struct {
	VideoURL string `json:"video_url,omitempty"`
	// PosterURL is shown as a static image with a play affordance when no
	// playable video URL is available.
	PosterURL   string `json:"poster_url,omitempty"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
}

type TextData struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
}

type GalleryItem struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type GalleryData struct {
	Title string        `json:"title,omitempty"`
	Items []GalleryItem `json:"items"`
}
