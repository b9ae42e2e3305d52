package domain

import "math"

type ElementType string

const (
	ElementHeading    ElementType = "heading"
	ElementParagraph  ElementType = "paragraph"
	ElementSubheading ElementType = "subheading"
	ElementBlockquote ElementType = "blockquote"
	ElementButton     ElementType = "button"
	ElementCard       ElementType = "card"
	ElementRectangle  ElementType = "rectangle"
	ElementCircle     ElementType = "circle"
	ElementTriangle   ElementType = "triangle"
	ElementStar       ElementType = "star"
	ElementHexagon    ElementType = "hexagon"
	ElementArrow      ElementType = "arrow"
	ElementLine       ElementType = "line"
	ElementImage      ElementType = "image"
	ElementVideo      ElementType = "video"
	ElementAudio      ElementType = "audio"
	ElementFrame      ElementType = "frame"
	ElementInput      ElementType = "input"
	ElementCheckbox   ElementType = "checkbox"
	ElementIcon       ElementType = "icon"
	ElementSocial     ElementType = "social"
)

// ElementTypes lists every recognized element type in toolbox order.
var ElementTypes = []ElementType{
	ElementHeading, ElementParagraph, ElementSubheading, ElementBlockquote,
	ElementButton, ElementCard,
	ElementRectangle, ElementCircle, ElementTriangle, ElementStar, ElementHexagon, ElementArrow, ElementLine,
	ElementImage, ElementVideo, ElementAudio, ElementFrame,
	ElementInput, ElementCheckbox, ElementIcon, ElementSocial,
}

// Known reports whether t is one of the fixed element variants.
func (t ElementType) Known() bool {
	for _, k := range ElementTypes {
		if k == t {
			return true
		}
	}
	return false
}

// IsText reports whether t is a text-bearing type. Text-bearing elements
// resize vertically only so their authored line wrapping is preserved.
func (t ElementType) IsText() bool {
	switch t {
	case ElementHeading, ElementParagraph, ElementSubheading, ElementBlockquote:
		return true
	}
	return false
}

// IsShape reports whether t is a vector shape.
func (t ElementType) IsShape() bool {
	switch t {
	case ElementRectangle, ElementCircle, ElementTriangle, ElementStar,
		ElementHexagon, ElementArrow, ElementLine:
		return true
	}
	return false
}

// IsMedia reports whether t carries a src URL.
func (t ElementType) IsMedia() bool {
	return t == ElementImage || t == ElementVideo || t == ElementAudio
}

// Linkable reports whether t may carry a navigation link.
func (t ElementType) Linkable() bool {
	return t == ElementButton || t == ElementIcon || t == ElementSocial
}

// Presentation defaults applied when a field is left empty.
const (
	DefaultFontFamily = "Arial, sans-serif"
	DefaultFontSize   = 16
	DefaultColor      = "#000000"
	DefaultTextAlign  = "left"
	DefaultLineHeight = 1.5
)

// Element is one positioned visual node on a Page.
type Element struct {
	ID   string      `json:"id"`
	Type ElementType `json:"type"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Rotation        float64  `json:"rotation,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty"`
	ZIndex          int      `json:"zIndex,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	BackgroundImage string   `json:"backgroundImage,omitempty"` // gradients and patterns
	BorderColor     string   `json:"borderColor,omitempty"`
	BorderWidth     float64  `json:"borderWidth,omitempty"`
	BorderRadius    float64  `json:"borderRadius,omitempty"`

	FontSize       float64 `json:"fontSize,omitempty"`
	FontFamily     string  `json:"fontFamily,omitempty"`
	Color          string  `json:"color,omitempty"`
	FontWeight     string  `json:"fontWeight,omitempty"`
	FontStyle      string  `json:"fontStyle,omitempty"`
	TextDecoration string  `json:"textDecoration,omitempty"`
	TextAlign      string  `json:"textAlign,omitempty"`
	LineHeight     float64 `json:"lineHeight,omitempty"`

	Animation string `json:"animation,omitempty"` // entrance animation, preview only

	Content     string `json:"content,omitempty"`
	Src         string `json:"src,omitempty"`
	Link        string `json:"link,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Checked     bool   `json:"checked,omitempty"`
}

// OpacityValue returns the element opacity, 1 when unset.
func (e *Element) OpacityValue() float64 {
	if e.Opacity == nil {
		return 1
	}
	return *e.Opacity
}

func (e *Element) FontFamilyValue() string {
	if e.FontFamily == "" {
		return DefaultFontFamily
	}
	return e.FontFamily
}

func (e *Element) FontSizeValue() float64 {
	if e.FontSize <= 0 {
		return DefaultFontSize
	}
	return e.FontSize
}

func (e *Element) ColorValue() string {
	if e.Color == "" {
		return DefaultColor
	}
	return e.Color
}

func (e *Element) TextAlignValue() string {
	if e.TextAlign == "" {
		return DefaultTextAlign
	}
	return e.TextAlign
}

func (e *Element) LineHeightValue() float64 {
	if e.LineHeight <= 0 {
		return DefaultLineHeight
	}
	return e.LineHeight
}

// GeometryValid reports whether every geometry field is finite and the
// size is non-negative.
func (e *Element) GeometryValid() bool {
	for _, v := range []float64{e.X, e.Y, e.Width, e.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return e.Width >= 0 && e.Height >= 0
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	if e.Opacity != nil {
		o := *e.Opacity
		e.Opacity = &o
	}
	return e
}
