package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncecure/internal/domain"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	n := 0
	return New(Options{
		NewID: func() string {
			n++
			return fmt.Sprintf("el-%d", n)
		},
		Random: func() float64 { return 0.5 },
	})
}

func TestNew_SinglePage(t *testing.T) {
	c := newTestController(t)
	assert.Equal(t, 1, c.PageCount())
	assert.Equal(t, 0, c.ActivePage())
	assert.Empty(t, c.Elements())
	assert.Equal(t, DefaultBackgroundColor, c.Background())
	assert.False(t, c.History().CanUndo())
}

func TestAddElement_DefaultsPlacementAndSelection(t *testing.T) {
	c := newTestController(t)
	el := c.AddElement(domain.ElementHeading, nil)

	assert.Equal(t, "el-1", el.ID)
	assert.Equal(t, 100.0, el.X, "50 + 0.5*100")
	assert.Equal(t, 100.0, el.Y)
	assert.Equal(t, 200.0, el.Width)
	assert.Equal(t, 40.0, el.Height)
	assert.Equal(t, "Heading", el.Content)
	assert.Equal(t, el.ID, c.Selected())
	assert.True(t, c.History().CanUndo())

	btn := c.AddElement(domain.ElementButton, Patch{"content": "Buy", "id": "forced"})
	assert.Equal(t, "Buy", btn.Content)
	assert.Equal(t, "el-2", btn.ID, "id cannot be overridden")
}

func TestAddElement_UniqueIDsOnCollision(t *testing.T) {
	c := New(Options{NewID: func() string { return "same" }})
	a := c.AddElement(domain.ElementImage, nil)
	b := c.AddElement(domain.ElementImage, nil)
	assert.Equal(t, "same", a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAddLayout_HeaderContentAndFallback(t *testing.T) {
	c := newTestController(t)
	els := c.AddLayout(LayoutHeaderContent)
	require.Len(t, els, 7)
	assert.Equal(t, domain.ElementRectangle, els[0].Type)
	assert.Equal(t, 600.0, els[0].Width)
	last := els[6]
	assert.Equal(t, domain.ElementButton, last.Type)
	assert.Equal(t, "Shop Now", last.Content)
	assert.Equal(t, "https://example.com/shop", last.Link)

	undo, _ := c.History().Len()
	assert.Equal(t, 1, undo, "a layout is one undo step")

	fb := c.AddLayout(99)
	require.Len(t, fb, 2)
	assert.Equal(t, domain.ElementHeading, fb[0].Type)
	assert.Equal(t, domain.ElementParagraph, fb[1].Type)
}

func TestUpdateElement_NoHistory(t *testing.T) {
	c := newTestController(t)
	el := c.AddElement(domain.ElementParagraph, nil)
	before, _ := c.History().Len()

	require.True(t, c.UpdateElement(el.ID, Patch{"content": "typing"}))
	after, _ := c.History().Len()
	assert.Equal(t, before, after)
	got, _ := c.Element(el.ID)
	assert.Equal(t, "typing", got.Content)

	assert.False(t, c.UpdateElement("missing", Patch{"x": 1.0}))
	assert.False(t, c.UpdateElement(el.ID, Patch{"width": -5.0}), "negative size is rejected")
	assert.False(t, c.UpdateElement(el.ID, Patch{"type": "image", "x": "nope"}), "wrong value type is rejected")
	got, _ = c.Element(el.ID)
	assert.Equal(t, domain.ElementParagraph, got.Type)
}

func TestStyleElement_RecordsAndUndoes(t *testing.T) {
	c := newTestController(t)
	el := c.AddElement(domain.ElementButton, nil)
	require.True(t, c.StyleElement(el.ID, Patch{"backgroundColor": "#ff0000"}))

	require.True(t, c.Undo())
	got, _ := c.Element(el.ID)
	assert.Equal(t, "#3b82f6", got.BackgroundColor)
	assert.Empty(t, c.Selected(), "undo clears the selection")

	require.True(t, c.Redo())
	got, _ = c.Element(el.ID)
	assert.Equal(t, "#ff0000", got.BackgroundColor)
}

func TestDeleteAndDuplicate(t *testing.T) {
	c := newTestController(t)
	assert.False(t, c.DeleteElement(), "nothing selected")
	_, ok := c.DuplicateElement()
	assert.False(t, ok)

	el := c.AddElement(domain.ElementCircle, nil)
	dup, ok := c.DuplicateElement()
	require.True(t, ok)
	assert.NotEqual(t, el.ID, dup.ID)
	assert.Equal(t, el.X+20, dup.X)
	assert.Equal(t, el.Y+20, dup.Y)
	assert.Equal(t, dup.ID, c.Selected())

	require.True(t, c.DeleteElement())
	assert.Empty(t, c.Selected())
	els := c.Elements()
	require.Len(t, els, 1)
	assert.Equal(t, el.ID, els[0].ID)
}

func TestSelectElement_UnknownIgnored(t *testing.T) {
	c := newTestController(t)
	el := c.AddElement(domain.ElementIcon, nil)
	assert.False(t, c.SelectElement("nope"))
	assert.Equal(t, el.ID, c.Selected())
	c.ClearSelection()
	assert.Empty(t, c.Selected())
}

func TestPages(t *testing.T) {
	c := newTestController(t)
	c.AddElement(domain.ElementHeading, nil)

	assert.Equal(t, 1, c.AddPage())
	assert.Equal(t, 1, c.ActivePage())
	assert.Empty(t, c.Elements())
	assert.Equal(t, 2, c.AddPage())

	assert.False(t, c.SetActivePage(3))
	require.True(t, c.SetActivePage(2))

	// Deleting a page before the active one shifts the active index.
	require.True(t, c.DeletePage(0))
	assert.Equal(t, 2, c.PageCount())
	assert.Equal(t, 1, c.ActivePage())

	// Deleting the active last page clamps.
	require.True(t, c.DeletePage(1))
	assert.Equal(t, 0, c.ActivePage())

	assert.False(t, c.DeletePage(0), "the last page is never removed")
	assert.False(t, c.DeletePage(7))
}

func TestUndoRestoresDeletedPage(t *testing.T) {
	c := newTestController(t)
	c.AddPage()
	require.True(t, c.DeletePage(1))
	require.True(t, c.Undo())
	assert.Equal(t, 2, c.PageCount())
}

func TestClearPage(t *testing.T) {
	c := newTestController(t)
	assert.False(t, c.ClearPage())
	c.AddLayout(LayoutTwoColumns)
	require.True(t, c.ClearPage())
	assert.Empty(t, c.Elements())
	require.True(t, c.Undo())
	assert.Len(t, c.Elements(), 7)
}

func TestHistoryLimit(t *testing.T) {
	c := New(Options{HistoryLimit: 3})
	for range 5 {
		c.AddElement(domain.ElementLine, nil)
	}
	undos := 0
	for c.Undo() {
		undos++
	}
	assert.Equal(t, 3, undos)
	assert.Len(t, c.Elements(), 2, "the two oldest adds fell off the stack")
}

func TestState_IsDeepCopy(t *testing.T) {
	c := newTestController(t)
	el := c.AddElement(domain.ElementHeading, nil)
	st := c.State()
	st.Pages[0].Elements[0].Content = "changed"

	got, _ := c.Element(el.ID)
	assert.Equal(t, "Heading", got.Content)
	assert.Equal(t, el.ID, st.SelectedElement)
	assert.True(t, st.CanUndo)
}

func TestUpdateElement_ClampsOpacity(t *testing.T) {
	c := newTestController(t)
	el := c.AddElement(domain.ElementImage, nil)

	require.True(t, c.UpdateElement(el.ID, Patch{"opacity": 1.7}))
	got, _ := c.Element(el.ID)
	require.NotNil(t, got.Opacity)
	assert.Equal(t, 1.0, *got.Opacity)

	require.True(t, c.UpdateElement(el.ID, Patch{"opacity": -0.2}))
	got, _ = c.Element(el.ID)
	assert.Equal(t, 0.0, *got.Opacity)

	require.True(t, c.UpdateElement(el.ID, Patch{"opacity": 0.4}))
	got, _ = c.Element(el.ID)
	assert.Equal(t, 0.4, *got.Opacity)
}
