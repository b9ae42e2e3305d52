package editor

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"bouncecure/internal/domain"
	"bouncecure/internal/template"
)

// Template save validation failures. Callers surface these to the user.
var (
	ErrTemplateNameRequired = errors.New("please enter a template name")
	ErrEmptyPage            = errors.New("cannot save an empty template: add some elements first")
)

// CanvasData returns the persisted form of the session.
func (c *Controller) CanvasData() domain.CanvasData {
	return domain.CanvasData{
		Pages:                 c.Pages(),
		ActivePage:            c.active,
		CanvasBackgroundColor: c.background,
	}
}

// Restore replaces the session with previously saved canvas data. History
// and selection are reset. Invalid data leaves the session untouched.
func (c *Controller) Restore(data domain.CanvasData) bool {
	if len(data.Pages) == 0 {
		return false
	}
	pages := domain.ClonePages(data.Pages)
	for i := range pages {
		if pages[i].Elements == nil {
			pages[i].Elements = []domain.Element{}
		}
		kept := pages[i].Elements[:0]
		seen := map[string]bool{}
		for _, el := range pages[i].Elements {
			if !el.GeometryValid() {
				continue
			}
			if el.ID == "" || seen[el.ID] {
				el.ID = c.newID()
			}
			seen[el.ID] = true
			kept = append(kept, el)
		}
		pages[i].Elements = kept
	}
	c.pages = pages
	c.nextPageID = 0
	for _, p := range pages {
		if p.ID > c.nextPageID {
			c.nextPageID = p.ID
		}
	}
	c.active = data.ActivePage
	if c.active < 0 || c.active >= len(c.pages) {
		c.active = 0
	}
	c.selected = ""
	c.SetBackground(data.CanvasBackgroundColor)
	c.history.Reset()
	return true
}

// BuildTemplate exports the active page as a named template. It fails
// when name is blank or the page has no elements.
func (c *Controller) BuildTemplate(name, category string) (*domain.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTemplateNameRequired
	}
	page := c.pages[c.active]
	if len(page.Elements) == 0 {
		return nil, ErrEmptyPage
	}
	if strings.TrimSpace(category) == "" {
		category = domain.DefaultTemplateCategory
	}
	now := time.Now()
	return &domain.Template{
		ID:                    uuid.New().String(),
		Name:                  name,
		Category:              category,
		Content:               template.EncodePage(page.Elements),
		CanvasBackgroundColor: c.background,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// ApplyTemplate replaces the active page with the template content as one
// undoable step. It returns the number of items that could not be decoded.
func (c *Controller) ApplyTemplate(t domain.Template) int {
	elements, skipped := template.DecodePage(t.Content)
	for i := range elements {
		elements[i].ID = c.newID()
	}
	c.ReplaceElements(elements)
	c.SetBackground(t.CanvasBackgroundColor)
	return skipped
}
