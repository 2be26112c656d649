package service

import (
	"encoding/json"
	"fmt"

	"perfume-shop-backend/internal/models"

	"github.com/google/uuid"
)

// The operations below are the only code allowed to restructure a layout's
// section list. Position is a denormalized mirror of the array index and is
// recomputed after every structural change, so the two can never drift.

func renumberSections(sections []models.Section) {
	for i := range sections {
		sections[i].Position = i
	}
}

// appendSection assigns a fresh id and the next dense position, then
// appends. The content payload shape must already match the type tag.
func appendSection(sections []models.Section, sectionType models.SectionType, content models.SectionContent) []models.Section {
	sections = append(sections, models.Section{
		ID:      uuid.New().String(),
		Type:    sectionType,
		Content: content,
	})
	renumberSections(sections)
	return sections
}

// removeSectionByID drops the matching section and renumbers the rest. A
// missing id is a no-op, not an error.
func removeSectionByID(sections []models.Section, sectionID string) []models.Section {
	out := sections[:0]
	for _, s := range sections {
		if s.ID != sectionID {
			out = append(out, s)
		}
	}
	renumberSections(out)
	return out
}

// moveSection swaps the section at index with its neighbour. Moves past
// either boundary are no-ops.
func moveSection(sections []models.Section, index int, up bool) {
	if index < 0 || index >= len(sections) {
		return
	}

	neighbour := index + 1
	if up {
		neighbour = index - 1
	}
	if neighbour < 0 || neighbour >= len(sections) {
		return
	}

	sections[index], sections[neighbour] = sections[neighbour], sections[index]
	renumberSections(sections)
}

// mergeSectionContent applies a partial content patch to the section's
// typed payload. Top-level fields present in the patch overwrite, absent
// fields are preserved; id, type and position are never touched. Sections
// carrying an unrecognized type cannot be edited in place.
func mergeSectionContent(section *models.Section, patch json.RawMessage) error {
	if len(patch) == 0 {
		return nil
	}

	if _, raw := section.Content.(models.RawContent); raw || section.Content == nil {
		return fmt.Errorf("%w: %s", ErrUnknownType, section.Type)
	}

	if err := json.Unmarshal(patch, section.Content); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func findSectionIndex(sections []models.Section, sectionID string) int {
	for i := range sections {
		if sections[i].ID == sectionID {
			return i
		}
	}
	return -1
}
