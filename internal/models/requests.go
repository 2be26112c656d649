package models

import "encoding/json"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SaveLayoutRequest is the full-overwrite save of one page's layout.
// PageID is taken from the URL parameter; a body value is overwritten.
type SaveLayoutRequest struct {
	PageID   string     `json:"page_id"`
	PageName string     `json:"page_name"`
	PagePath string     `json:"page_path"`
	Sections *[]Section `json:"sections" binding:"required"`
}

type AddSectionRequest struct {
	Type    SectionType     `json:"type" binding:"required"`
	Content json.RawMessage `json:"content"`
}

// UpdateSectionRequest carries a partial content patch. Fields present in
// the patch overwrite, fields absent are preserved; id, type and position
// are never touched by an update.
type UpdateSectionRequest struct {
	Content json.RawMessage `json:"content" binding:"required"`
}

type MoveSectionRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,no_html"`
	Brand       string   `json:"brand" binding:"omitempty,no_html"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents" binding:"required,min=0"`
	ImageURL    string   `json:"image_url"`
	Volume      string   `json:"volume"`
	Notes       []string `json:"notes"`
	InStock     *bool    `json:"in_stock"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Brand       *string   `json:"brand"`
	Description *string   `json:"description"`
	PriceCents  *int64    `json:"price_cents"`
	ImageURL    *string   `json:"image_url"`
	Volume      *string   `json:"volume"`
	Notes       *[]string `json:"notes"`
	InStock     *bool     `json:"in_stock"`
}
