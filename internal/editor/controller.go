package editor

import (
	"log"
	"math/rand/v2"

	"github.com/google/uuid"

	"bouncecure/internal/domain"
)

const (
	DefaultBackgroundColor = "#ffffff"

	// duplicateOffset is how far a duplicated element is shifted from its source.
	duplicateOffset = 20
	// placement window for freshly added elements.
	placementOrigin = 50
	placementSpread = 100
)

// Options configures a Controller. Zero values select defaults.
type Options struct {
	HistoryLimit    int
	BackgroundColor string
	NewID           func() string
	Random          func() float64
}

// Controller owns the page collection of one editing session. Every
// mutation passes through it so undo snapshots stay consistent.
// A Controller is not safe for concurrent use.
type Controller struct {
	pages      []domain.Page
	active     int
	selected   string
	background string
	nextPageID int

	history *History
	newID   func() string
	random  func() float64
}

// New creates a Controller holding a single empty page.
func New(opts Options) *Controller {
	c := &Controller{
		background: opts.BackgroundColor,
		history:    NewHistory(opts.HistoryLimit),
		newID:      opts.NewID,
		random:     opts.Random,
	}
	if c.background == "" {
		c.background = DefaultBackgroundColor
	}
	if c.newID == nil {
		c.newID = func() string { return uuid.New().String() }
	}
	if c.random == nil {
		c.random = rand.Float64
	}
	c.pages = []domain.Page{c.newPage()}
	return c
}

func (c *Controller) newPage() domain.Page {
	c.nextPageID++
	return domain.Page{ID: c.nextPageID, Elements: []domain.Element{}}
}

// ── Reads ──────────────────────────────────────────────────

// Pages returns a deep copy of the page collection.
func (c *Controller) Pages() []domain.Page { return domain.ClonePages(c.pages) }

func (c *Controller) ActivePage() int { return c.active }

func (c *Controller) PageCount() int { return len(c.pages) }

// Selected returns the selected element id, or "".
func (c *Controller) Selected() string { return c.selected }

func (c *Controller) History() *History { return c.history }

func (c *Controller) Background() string { return c.background }

// SetBackground changes the canvas background color.
func (c *Controller) SetBackground(color string) {
	if color != "" {
		c.background = color
	}
}

// Elements returns a copy of the active page's elements.
func (c *Controller) Elements() []domain.Element {
	return c.pages[c.active].Clone().Elements
}

// Element looks up an element on the active page.
func (c *Controller) Element(id string) (domain.Element, bool) {
	page := &c.pages[c.active]
	i := page.Find(id)
	if i < 0 {
		return domain.Element{}, false
	}
	return page.Elements[i].Clone(), true
}

// State returns a deep copy of the session state.
func (c *Controller) State() domain.SessionState {
	return domain.SessionState{
		Pages:           c.Pages(),
		ActivePage:      c.active,
		SelectedElement: c.selected,
		CanUndo:         c.history.CanUndo(),
		CanRedo:         c.history.CanRedo(),
	}
}

// ── Snapshots ──────────────────────────────────────────────

// snapshot captures the current pages for a later record call.
func (c *Controller) snapshot() []domain.Page { return domain.ClonePages(c.pages) }

// record pushes a pre-mutation snapshot onto the undo stack.
func (c *Controller) record(before []domain.Page) { c.history.Record(before) }

// ── Elements ───────────────────────────────────────────────

// AddElement appends a new element of type t to the active page, selects
// it and returns it. overrides are merged over the type defaults.
func (c *Controller) AddElement(t domain.ElementType, overrides Patch) domain.Element {
	el := defaultElement(t)
	el.X = placementOrigin + c.random()*placementSpread
	el.Y = placementOrigin + c.random()*placementSpread
	if merged, err := applyPatch(el, overrides); err != nil {
		log.Printf("[EDITOR] add %s: ignoring overrides: %v", t, err)
	} else {
		el = merged
	}
	el.ID = c.uniqueID()

	before := c.snapshot()
	page := &c.pages[c.active]
	page.Elements = append(page.Elements, el)
	c.selected = el.ID
	c.record(before)
	return el.Clone()
}

// AddLayout appends the elements of a predefined layout to the active page
// as one undoable step. Unknown ids insert the fallback layout.
func (c *Controller) AddLayout(id int) []domain.Element {
	layout := LayoutByID(id)
	before := c.snapshot()
	page := &c.pages[c.active]
	added := make([]domain.Element, 0, len(layout.Elements))
	for _, el := range layout.Elements {
		el = el.Clone()
		el.ID = c.uniqueID()
		page.Elements = append(page.Elements, el)
		added = append(added, el.Clone())
	}
	c.record(before)
	return added
}

// UpdateElement shallow-merges patch into the element with the given id.
// It does not record history; gestures record at their boundary.
func (c *Controller) UpdateElement(id string, patch Patch) bool {
	page := &c.pages[c.active]
	i := page.Find(id)
	if i < 0 {
		return false
	}
	merged, err := applyPatch(page.Elements[i], patch)
	if err != nil {
		log.Printf("[EDITOR] update %s: %v", id, err)
		return false
	}
	page.Elements[i] = merged
	return true
}

// StyleElement applies patch as one undoable step.
func (c *Controller) StyleElement(id string, patch Patch) bool {
	if c.pages[c.active].Find(id) < 0 {
		return false
	}
	before := c.snapshot()
	if !c.UpdateElement(id, patch) {
		return false
	}
	c.record(before)
	return true
}

// MoveElement sets an element position as one undoable step.
func (c *Controller) MoveElement(id string, x, y float64) bool {
	return c.StyleElement(id, Patch{"x": x, "y": y})
}

// DeleteElement removes the selected element.
func (c *Controller) DeleteElement() bool {
	if c.selected == "" {
		return false
	}
	page := &c.pages[c.active]
	i := page.Find(c.selected)
	if i < 0 {
		c.selected = ""
		return false
	}
	before := c.snapshot()
	page.Elements = append(page.Elements[:i], page.Elements[i+1:]...)
	c.selected = ""
	c.record(before)
	return true
}

// DuplicateElement clones the selected element with a fresh id, shifted
// by (+20,+20), and selects the clone.
func (c *Controller) DuplicateElement() (domain.Element, bool) {
	if c.selected == "" {
		return domain.Element{}, false
	}
	page := &c.pages[c.active]
	i := page.Find(c.selected)
	if i < 0 {
		return domain.Element{}, false
	}
	before := c.snapshot()
	dup := page.Elements[i].Clone()
	dup.ID = c.uniqueID()
	dup.X += duplicateOffset
	dup.Y += duplicateOffset
	page.Elements = append(page.Elements, dup)
	c.selected = dup.ID
	c.record(before)
	return dup.Clone(), true
}

// SelectElement selects an element of the active page. Unknown ids are ignored.
func (c *Controller) SelectElement(id string) bool {
	if c.pages[c.active].Find(id) < 0 {
		return false
	}
	c.selected = id
	return true
}

func (c *Controller) ClearSelection() { c.selected = "" }

// ── Pages ──────────────────────────────────────────────────

// AddPage appends an empty page and makes it active.
func (c *Controller) AddPage() int {
	before := c.snapshot()
	c.pages = append(c.pages, c.newPage())
	c.active = len(c.pages) - 1
	c.selected = ""
	c.record(before)
	return c.active
}

// DeletePage removes the page at index. The last remaining page is never
// removed.
func (c *Controller) DeletePage(index int) bool {
	if len(c.pages) <= 1 || index < 0 || index >= len(c.pages) {
		return false
	}
	before := c.snapshot()
	c.pages = append(c.pages[:index], c.pages[index+1:]...)
	switch {
	case c.active >= len(c.pages):
		c.active = len(c.pages) - 1
	case index < c.active:
		c.active--
	}
	c.validateSelection()
	c.record(before)
	return true
}

// SetActivePage switches the active page.
func (c *Controller) SetActivePage(index int) bool {
	if index < 0 || index >= len(c.pages) {
		return false
	}
	if index != c.active {
		c.active = index
		c.selected = ""
	}
	return true
}

// ClearPage removes every element of the active page.
func (c *Controller) ClearPage() bool {
	page := &c.pages[c.active]
	if len(page.Elements) == 0 {
		return false
	}
	before := c.snapshot()
	page.Elements = []domain.Element{}
	c.selected = ""
	c.record(before)
	return true
}

// ReplaceElements swaps the active page content as one undoable step.
func (c *Controller) ReplaceElements(elements []domain.Element) {
	before := c.snapshot()
	page := &c.pages[c.active]
	page.Elements = make([]domain.Element, 0, len(elements))
	seen := map[string]bool{}
	for _, el := range elements {
		el = el.Clone()
		if el.ID == "" || seen[el.ID] {
			el.ID = c.newID()
		}
		seen[el.ID] = true
		page.Elements = append(page.Elements, el)
	}
	c.selected = ""
	c.record(before)
}

// ── Undo / Redo ────────────────────────────────────────────

func (c *Controller) Undo() bool {
	pages, ok := c.history.Undo(c.pages)
	if !ok {
		return false
	}
	c.setPages(pages)
	return true
}

func (c *Controller) Redo() bool {
	pages, ok := c.history.Redo(c.pages)
	if !ok {
		return false
	}
	c.setPages(pages)
	return true
}

func (c *Controller) setPages(pages []domain.Page) {
	if len(pages) == 0 {
		pages = []domain.Page{c.newPage()}
	}
	c.pages = pages
	for _, p := range pages {
		if p.ID >= c.nextPageID {
			c.nextPageID = p.ID
		}
	}
	if c.active >= len(c.pages) {
		c.active = len(c.pages) - 1
	}
	c.selected = ""
}

// ── Helpers ────────────────────────────────────────────────

// uniqueID draws ids until one is unused on the active page, falling back
// to a random uuid when the generator keeps colliding.
func (c *Controller) uniqueID() string {
	page := &c.pages[c.active]
	for range 16 {
		id := c.newID()
		if id != "" && page.Find(id) < 0 {
			return id
		}
	}
	for {
		id := uuid.New().String()
		if page.Find(id) < 0 {
			return id
		}
	}
}

func (c *Controller) validateSelection() {
	if c.selected != "" && c.pages[c.active].Find(c.selected) < 0 {
		c.selected = ""
	}
}
