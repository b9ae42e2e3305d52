// Package template converts between editor elements and the reduced
// {type, value, style} items stored in saved templates.
package template

import (
	"encoding/json"
	"fmt"

	"bouncecure/internal/domain"
)

// Item types of the persisted template format.
const (
	ItemText   = "text"
	ItemButton = "button"
	ItemImage  = "image"
	ItemVideo  = "video"
	ItemAudio  = "audio"
)

// ShapePlaceholder is the image a non-media visual element becomes in a
// template.
func ShapePlaceholder(t domain.ElementType) string {
	return "https://via.placeholder.com/150?text=" + string(t)
}

// itemType maps an element type onto its template item type.
func itemType(t domain.ElementType) string {
	switch {
	case t.IsText():
		return ItemText
	case t == domain.ElementButton:
		return ItemButton
	case t == domain.ElementImage:
		return ItemImage
	case t == domain.ElementVideo:
		return ItemVideo
	case t == domain.ElementAudio:
		return ItemAudio
	case t.IsShape(), t == domain.ElementCard, t == domain.ElementFrame:
		return ItemImage
	}
	return ItemText
}

// keepsType reports whether the original element type survives the export.
// Shapes, cards and frames are flattened into images.
func keepsType(t domain.ElementType) bool {
	return itemType(t) == ItemText
}

// Encode maps one element onto a template item.
func Encode(el domain.Element) domain.TemplateItem {
	it := domain.TemplateItem{Type: itemType(el.Type), Style: map[string]any{
		"left":   el.X,
		"top":    el.Y,
		"width":  el.Width,
		"height": el.Height,
	}}
	switch it.Type {
	case ItemText, ItemButton:
		it.Value = el.Content
	case ItemImage, ItemVideo, ItemAudio:
		it.Value = el.Src
		if !el.Type.IsMedia() {
			it.Value = ShapePlaceholder(el.Type)
		}
	}
	if keepsType(el.Type) && el.Type != "" {
		it.Style["elementType"] = string(el.Type)
	}

	s := it.Style
	putNum(s, "rotation", el.Rotation)
	if el.Opacity != nil {
		s["opacity"] = *el.Opacity
	}
	if el.ZIndex != 0 {
		s["zIndex"] = float64(el.ZIndex)
	}
	putStr(s, "backgroundColor", el.BackgroundColor)
	putStr(s, "backgroundImage", el.BackgroundImage)
	putStr(s, "borderColor", el.BorderColor)
	putNum(s, "borderWidth", el.BorderWidth)
	putNum(s, "borderRadius", el.BorderRadius)
	putNum(s, "fontSize", el.FontSize)
	putStr(s, "fontFamily", el.FontFamily)
	putStr(s, "color", el.Color)
	putStr(s, "fontWeight", el.FontWeight)
	putStr(s, "fontStyle", el.FontStyle)
	putStr(s, "textDecoration", el.TextDecoration)
	putStr(s, "textAlign", el.TextAlign)
	putNum(s, "lineHeight", el.LineHeight)
	putStr(s, "animation", el.Animation)
	putStr(s, "link", el.Link)
	putStr(s, "alt", el.Alt)
	putStr(s, "placeholder", el.Placeholder)
	if el.Checked {
		s["checked"] = true
	}
	return it
}

// EncodePage maps every element of a page, in display order.
func EncodePage(elements []domain.Element) []domain.TemplateItem {
	items := make([]domain.TemplateItem, len(elements))
	for i, el := range elements {
		items[i] = Encode(el)
	}
	return items
}

// Decode rebuilds a full element from a template item. The id is left
// empty for the caller to assign. Missing style fields stay at their zero
// value so element defaults apply.
func Decode(it domain.TemplateItem) (domain.Element, error) {
	s := it.Style
	if s == nil {
		s = map[string]any{}
	}
	el := domain.Element{
		X:      num(s, "left"),
		Y:      num(s, "top"),
		Width:  num(s, "width"),
		Height: num(s, "height"),
	}

	switch it.Type {
	case ItemText:
		el.Type = domain.ElementParagraph
		if t := domain.ElementType(str(s, "elementType")); t != "" {
			el.Type = t
		}
		el.Content = it.Value
	case ItemButton:
		el.Type = domain.ElementButton
		el.Content = it.Value
	case ItemImage:
		el.Type = domain.ElementImage
		el.Src = it.Value
	case ItemVideo:
		el.Type = domain.ElementVideo
		el.Src = it.Value
	case ItemAudio:
		el.Type = domain.ElementAudio
		el.Src = it.Value
	default:
		return domain.Element{}, fmt.Errorf("unknown template item type %q", it.Type)
	}

	el.Rotation = num(s, "rotation")
	if v, ok := s["opacity"]; ok {
		if f, ok := toFloat(v); ok {
			el.Opacity = &f
		}
	}
	el.ZIndex = int(num(s, "zIndex"))
	el.BackgroundColor = str(s, "backgroundColor")
	el.BackgroundImage = str(s, "backgroundImage")
	el.BorderColor = str(s, "borderColor")
	el.BorderWidth = num(s, "borderWidth")
	el.BorderRadius = num(s, "borderRadius")
	el.FontSize = num(s, "fontSize")
	el.FontFamily = str(s, "fontFamily")
	el.Color = str(s, "color")
	el.FontWeight = str(s, "fontWeight")
	el.FontStyle = str(s, "fontStyle")
	el.TextDecoration = str(s, "textDecoration")
	el.TextAlign = str(s, "textAlign")
	el.LineHeight = num(s, "lineHeight")
	el.Animation = str(s, "animation")
	el.Link = str(s, "link")
	el.Alt = str(s, "alt")
	el.Placeholder = str(s, "placeholder")
	el.Checked, _ = s["checked"].(bool)

	if !el.GeometryValid() {
		return domain.Element{}, fmt.Errorf("template item %q: invalid geometry", it.Type)
	}
	return el, nil
}

// DecodePage rehydrates every item; items that cannot be decoded are skipped
// and reported in the returned error count.
func DecodePage(items []domain.TemplateItem) ([]domain.Element, int) {
	out := make([]domain.Element, 0, len(items))
	skipped := 0
	for _, it := range items {
		el, err := Decode(it)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, el)
	}
	return out, skipped
}

func putNum(s map[string]any, k string, v float64) {
	if v != 0 {
		s[k] = v
	}
}

func putStr(s map[string]any, k, v string) {
	if v != "" {
		s[k] = v
	}
}

func num(s map[string]any, k string) float64 {
	f, _ := toFloat(s[k])
	return f
}

func str(s map[string]any, k string) string {
	v, _ := s[k].(string)
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
