package editor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncecure/internal/domain"
	"bouncecure/internal/template"
)

func TestRestore(t *testing.T) {
	c := newTestController(t)
	c.AddElement(domain.ElementHeading, nil)

	data := domain.CanvasData{
		Pages: []domain.Page{
			{ID: 3, Elements: []domain.Element{
				{ID: "a", Type: domain.ElementHeading, Width: 10, Height: 10},
				{ID: "a", Type: domain.ElementParagraph, Width: 10, Height: 10},
				{ID: "bad", Type: domain.ElementImage, Width: math.NaN()},
			}},
			{ID: 7},
		},
		ActivePage:            1,
		CanvasBackgroundColor: "#fafafa",
	}
	require.True(t, c.Restore(data))

	assert.Equal(t, 2, c.PageCount())
	assert.Equal(t, 1, c.ActivePage())
	assert.Equal(t, "#fafafa", c.Background())
	assert.False(t, c.History().CanUndo())
	assert.Empty(t, c.Selected())

	pages := c.Pages()
	require.Len(t, pages[0].Elements, 2, "invalid geometry dropped")
	assert.NotEqual(t, pages[0].Elements[0].ID, pages[0].Elements[1].ID)
	assert.NotNil(t, pages[1].Elements)

	assert.Equal(t, 2, c.AddPage())
	assert.Equal(t, 8, c.Pages()[2].ID, "page ids continue after the restored maximum")
}

func TestRestore_RejectsEmptyAndClampsActive(t *testing.T) {
	c := newTestController(t)
	assert.False(t, c.Restore(domain.CanvasData{}))

	require.True(t, c.Restore(domain.CanvasData{Pages: []domain.Page{{ID: 1}}, ActivePage: 9}))
	assert.Equal(t, 0, c.ActivePage())
	assert.Equal(t, DefaultBackgroundColor, c.Background(), "empty color keeps the current one")
}

func TestBuildTemplate(t *testing.T) {
	c := newTestController(t)
	_, err := c.BuildTemplate("  ", "")
	assert.ErrorIs(t, err, ErrTemplateNameRequired)
	_, err = c.BuildTemplate("Spring", "")
	assert.ErrorIs(t, err, ErrEmptyPage)

	c.AddElement(domain.ElementHeading, nil)
	c.AddElement(domain.ElementStar, nil)
	c.SetBackground("#eeeeee")

	tpl, err := c.BuildTemplate(" Spring ", "")
	require.NoError(t, err)
	assert.Equal(t, "Spring", tpl.Name)
	assert.Equal(t, domain.DefaultTemplateCategory, tpl.Category)
	assert.Equal(t, "#eeeeee", tpl.CanvasBackgroundColor)
	require.Len(t, tpl.Content, 2)
	assert.Equal(t, template.ItemText, tpl.Content[0].Type)
	assert.Equal(t, template.ItemImage, tpl.Content[1].Type)
	assert.Equal(t, template.ShapePlaceholder(domain.ElementStar), tpl.Content[1].Value)
	assert.NotEmpty(t, tpl.ID)
}

func TestApplyTemplate_IsUndoable(t *testing.T) {
	c := newTestController(t)
	c.AddElement(domain.ElementButton, nil)

	tpl := domain.Template{
		CanvasBackgroundColor: "#000000",
		Content: []domain.TemplateItem{
			{Type: template.ItemText, Value: "Hi", Style: map[string]any{"elementType": "heading", "width": 100.0, "height": 20.0}},
			{Type: "carousel", Value: "?"},
		},
	}
	assert.Equal(t, 1, c.ApplyTemplate(tpl))
	els := c.Elements()
	require.Len(t, els, 1)
	assert.Equal(t, domain.ElementHeading, els[0].Type)
	assert.Equal(t, "#000000", c.Background())

	require.True(t, c.Undo())
	els = c.Elements()
	require.Len(t, els, 1)
	assert.Equal(t, domain.ElementButton, els[0].Type)
}
