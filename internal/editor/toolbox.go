package editor

import (
	"fmt"

	"bouncecure/internal/domain"
)

// Action is one creation entry offered by the toolbox.
type Action struct {
	Tab      string             `json:"tab"`
	Label    string             `json:"label"`
	Element  domain.ElementType `json:"element,omitempty"`
	LayoutID int                `json:"layoutId,omitempty"`
}

// Patterns are the CSS backgrounds offered by the pattern picker.
var Patterns = map[string]string{
	"dots":         "radial-gradient(#9ca3af 1px, transparent 1px) 0 0 / 12px 12px",
	"stripes":      "repeating-linear-gradient(45deg, #e5e7eb 0, #e5e7eb 10px, #ffffff 10px, #ffffff 20px)",
	"grid":         "linear-gradient(#e5e7eb 1px, transparent 1px) 0 0 / 20px 20px, linear-gradient(90deg, #e5e7eb 1px, transparent 1px) 0 0 / 20px 20px",
	"checkerboard": "repeating-conic-gradient(#e5e7eb 0% 25%, #ffffff 0% 50%) 0 0 / 20px 20px",
}

var tabByType = map[domain.ElementType]string{
	domain.ElementHeading:    "text",
	domain.ElementSubheading: "text",
	domain.ElementParagraph:  "text",
	domain.ElementBlockquote: "text",
	domain.ElementButton:     "elements",
	domain.ElementCard:       "elements",
	domain.ElementFrame:      "elements",
	domain.ElementRectangle:  "shapes",
	domain.ElementCircle:     "shapes",
	domain.ElementTriangle:   "shapes",
	domain.ElementStar:       "shapes",
	domain.ElementHexagon:    "shapes",
	domain.ElementArrow:      "shapes",
	domain.ElementLine:       "shapes",
	domain.ElementImage:      "media",
	domain.ElementVideo:      "media",
	domain.ElementAudio:      "media",
	domain.ElementInput:      "forms",
	domain.ElementCheckbox:   "forms",
	domain.ElementIcon:       "social",
	domain.ElementSocial:     "social",
}

// Toolbox forwards creation and styling actions to a Controller. It holds
// no editor state of its own beyond the active tab.
type Toolbox struct {
	ctl       *Controller
	ActiveTab string
}

func NewToolbox(ctl *Controller) *Toolbox {
	return &Toolbox{ctl: ctl, ActiveTab: "text"}
}

// Actions lists every creation action, element types first, then layouts.
func (tb *Toolbox) Actions() []Action {
	actions := make([]Action, 0, len(domain.ElementTypes)+6)
	for _, t := range domain.ElementTypes {
		actions = append(actions, Action{Tab: tabByType[t], Label: label(t), Element: t})
	}
	for _, l := range Layouts() {
		actions = append(actions, Action{Tab: "layouts", Label: l.Name, LayoutID: l.ID})
	}
	return actions
}

// Run performs a creation action.
func (tb *Toolbox) Run(a Action) []domain.Element {
	if a.LayoutID != 0 {
		return tb.ctl.AddLayout(a.LayoutID)
	}
	return []domain.Element{tb.ctl.AddElement(a.Element, nil)}
}

// ApplyColor sets the background color of the selection, or adds a card of
// that color when nothing is selected.
func (tb *Toolbox) ApplyColor(color string) string {
	return tb.applyBackground(Patch{"backgroundColor": color, "backgroundImage": ""})
}

// ApplyGradient applies a linear gradient like ApplyColor.
func (tb *Toolbox) ApplyGradient(from, to string, angle float64) string {
	g := fmt.Sprintf("linear-gradient(%gdeg, %s, %s)", angle, from, to)
	return tb.applyBackground(Patch{"backgroundImage": g})
}

// ApplyPattern applies a named pattern like ApplyColor. Unknown patterns
// are ignored.
func (tb *Toolbox) ApplyPattern(name string) string {
	p, ok := Patterns[name]
	if !ok {
		return ""
	}
	return tb.applyBackground(Patch{"backgroundImage": p})
}

// applyBackground returns the id of the element that received the style.
func (tb *Toolbox) applyBackground(patch Patch) string {
	if id := tb.ctl.Selected(); id != "" {
		if tb.ctl.StyleElement(id, patch) {
			return id
		}
	}
	return tb.ctl.AddElement(domain.ElementCard, patch).ID
}

func label(t domain.ElementType) string {
	s := string(t)
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
