package domain

// Page is an ordered collection of Elements. Order is display order only;
// z-order comes from Element.ZIndex.
type Page struct {
	ID       int       `json:"id"`
	Elements []Element `json:"elements"`
}

// Find returns the index of the element with the given id, or -1.
func (p *Page) Find(id string) int {
	for i := range p.Elements {
		if p.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the page.
func (p Page) Clone() Page {
	elements := make([]Element, len(p.Elements))
	for i, el := range p.Elements {
		elements[i] = el.Clone()
	}
	p.Elements = elements
	return p
}

// ClonePages deep-copies a page collection. The result is what history
// snapshots hold.
func ClonePages(pages []Page) []Page {
	out := make([]Page, len(pages))
	for i, p := range pages {
		out[i] = p.Clone()
	}
	return out
}

// SessionState is the editor state handed to the frontend.
type SessionState struct {
	Pages           []Page `json:"pages"`
	ActivePage      int    `json:"activePage"`
	SelectedElement string `json:"selectedElement,omitempty"`
	CanUndo         bool   `json:"canUndo"`
	CanRedo         bool   `json:"canRedo"`
}

// CanvasData is the persisted form of an editing session.
type CanvasData struct {
	Pages                 []Page `json:"pages"`
	ActivePage            int    `json:"activePage"`
	CanvasBackgroundColor string `json:"canvasBackgroundColor"`
}
