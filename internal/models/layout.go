package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Layout is the persisted, page-scoped ordered collection of sections plus
// page metadata. One row per logical page, keyed by PageID.
type Layout struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PageID   string         `gorm:"uniqueIndex;not null" json:"page_id"`
	PageName string         `gorm:"not null" json:"page_name"`
	PagePath string         `gorm:"not null" json:"page_path"`
	Sections LayoutSections `gorm:"type:jsonb" json:"sections"`
}

type SectionType string

const (
	SectionTypeProduct SectionType = "product"
	SectionTypeImage   SectionType = "image"
	SectionTypeVideo   SectionType = "video"
	SectionTypeText    SectionType = "text"
	SectionTypeBanner  SectionType = "banner"
	SectionTypeGallery SectionType = "gallery"
)

// Section is one typed content block within a layout. Type is fixed at
// creation; Position mirrors the section's array index and is recomputed
// after every structural change.
type Section struct {
	ID       string         `json:"id"`
	Type     SectionType    `json:"type"`
	Position int            `json:"position"`
	Content  SectionContent `json:"content"`
}

// SectionContent is the variant payload carried by a section. The concrete
// shape is determined by the section's type tag.
type SectionContent interface {
	sectionContent()
}

type ProductContent struct {
	ProductIDs []string `json:"productIds"`
	Title      string   `json:"title,omitempty"`
	Subtitle   string   `json:"subtitle,omitempty"`
	ButtonText string   `json:"buttonText,omitempty"`
	ButtonLink string   `json:"buttonLink,omitempty"`
}

// ImageContent backs both image and banner sections; the two types share a
// payload shape but keep distinct tags.
type ImageContent struct {
	ImageURL    string `json:"imageUrl"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	ButtonText  string `json:"buttonText,omitempty"`
	ButtonLink  string `json:"buttonLink,omitempty"`
}

type VideoContent struct {
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Title        string `json:"title,omitempty"`
	Subtitle     string `json:"subtitle,omitempty"`
	Description  string `json:"description,omitempty"`
}

type TextContent struct {
	Body  string `json:"body"`
	Title string `json:"title,omitempty"`
}

type MediaItem struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type GalleryContent struct {
	MediaItems []MediaItem `json:"mediaItems"`
	Title      string      `json:"title,omitempty"`
}

// RawContent holds the untouched payload of a section whose type this
// build does not know. It survives a load/save round-trip unchanged so a
// newer producer's data is never dropped.
type RawContent json.RawMessage

func (*ProductContent) sectionContent() {}
func (*ImageContent) sectionContent()   {}
func (*VideoContent) sectionContent()   {}
func (*TextContent) sectionContent()    {}
func (*GalleryContent) sectionContent() {}
func (RawContent) sectionContent()      {}

func (r RawContent) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return []byte(r), nil
}

// NewContentForType returns a zero payload of the shape matching the type
// tag, or false for types outside the closed set.
func NewContentForType(t SectionType) (SectionContent, bool) {
	switch t {
	case SectionTypeProduct:
		return &ProductContent{}, true
	case SectionTypeImage, SectionTypeBanner:
		return &ImageContent{}, true
	case SectionTypeVideo:
		return &VideoContent{}, true
	case SectionTypeText:
		return &TextContent{}, true
	case SectionTypeGallery:
		return &GalleryContent{}, true
	}
	return nil, false
}

type sectionEnvelope struct {
	ID       string          `json:"id"`
	Type     SectionType     `json:"type"`
	Position int             `json:"position"`
	Content  json.RawMessage `json:"content"`
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var env sectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	s.ID = env.ID
	s.Type = env.Type
	s.Position = env.Position

	content, known := NewContentForType(env.Type)
	if !known {
		s.Content = RawContent(env.Content)
		return nil
	}

	if len(env.Content) > 0 {
		if err := json.Unmarshal(env.Content, content); err != nil {
			return fmt.Errorf("decode %s section content: %w", env.Type, err)
		}
	}
	s.Content = content
	return nil
}

func (s Section) MarshalJSON() ([]byte, error) {
	content, err := json.Marshal(s.Content)
	if err != nil {
		return nil, err
	}

	return json.Marshal(sectionEnvelope{
		ID:       s.ID,
		Type:     s.Type,
		Position: s.Position,
		Content:  content,
	})
}

type LayoutSections []Section

func (ls *LayoutSections) Scan(value interface{}) error {
	if value == nil {
		*ls = LayoutSections{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan LayoutSections")
	}

	return json.Unmarshal(bytes, ls)
}

func (ls LayoutSections) Value() (driver.Value, error) {
	if len(ls) == 0 {
		return nil, nil
	}
	return json.Marshal(ls)
}
