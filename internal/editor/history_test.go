package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bouncecure/internal/domain"
)

func pagesWith(ids ...string) []domain.Page {
	p := domain.Page{ID: 1, Elements: []domain.Element{}}
	for _, id := range ids {
		p.Elements = append(p.Elements, domain.Element{ID: id, Type: domain.ElementHeading})
	}
	return []domain.Page{p}
}

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, DefaultHistoryLimit, h.Limit())
	assert.False(t, h.CanUndo())

	h.Record(pagesWith())
	h.Record(pagesWith("a"))

	got, ok := h.Undo(pagesWith("a", "b"))
	require.True(t, ok)
	assert.Len(t, got[0].Elements, 1)
	assert.True(t, h.CanRedo())

	got, ok = h.Redo(got)
	require.True(t, ok)
	assert.Len(t, got[0].Elements, 2)

	undo, redo := h.Len()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 0, redo)
}

func TestHistory_RecordClearsRedo(t *testing.T) {
	h := NewHistory(5)
	h.Record(pagesWith())
	_, ok := h.Undo(pagesWith("a"))
	require.True(t, ok)
	require.True(t, h.CanRedo())

	h.Record(pagesWith("x"))
	assert.False(t, h.CanRedo())
}

func TestHistory_BoundedDropsOldest(t *testing.T) {
	h := NewHistory(3)
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		h.Record(pagesWith(id))
	}
	undo, _ := h.Len()
	assert.Equal(t, 3, undo)

	stack, _ := h.Stacks()
	assert.Equal(t, "3", stack[0][0].Elements[0].ID, "oldest surviving entry")
	assert.Equal(t, "5", stack[2][0].Elements[0].ID)
}

func TestHistory_SnapshotsAreIsolated(t *testing.T) {
	h := NewHistory(5)
	pages := pagesWith("a")
	h.Record(pages)
	pages[0].Elements[0].Content = "mutated"

	got, ok := h.Undo(pagesWith())
	require.True(t, ok)
	assert.Empty(t, got[0].Elements[0].Content)
}

func TestHistory_RestoreTrims(t *testing.T) {
	h := NewHistory(2)
	h.Restore([][]domain.Page{pagesWith("1"), pagesWith("2"), pagesWith("3")}, nil)
	undo, redo := h.Len()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 0, redo)

	h.Reset()
	assert.False(t, h.CanUndo())
}

func TestHistory_VersionAdvances(t *testing.T) {
	h := NewHistory(3)
	v := h.Version()
	h.Record(pagesWith())
	assert.NotEqual(t, v, h.Version())
	v = h.Version()
	_, ok := h.Undo(pagesWith("a"))
	require.True(t, ok)
	assert.NotEqual(t, v, h.Version())
}
