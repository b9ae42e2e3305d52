// Package render projects pages of elements to HTML. Each element type has
// its own Renderer; the editable and preview paths share them so both
// paint identical element markup.
package render

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"bouncecure/internal/domain"
)

// Renderer writes the inner markup of one element.
type Renderer interface {
	Render(b *strings.Builder, el domain.Element)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(b *strings.Builder, el domain.Element)

func (f RendererFunc) Render(b *strings.Builder, el domain.Element) { f(b, el) }

var registry = map[domain.ElementType]Renderer{}

// Register installs r for element type t, replacing any previous renderer.
func Register(t domain.ElementType, r Renderer) {
	registry[t] = r
}

// For returns the renderer for t; unknown types get an empty box.
func For(t domain.ElementType) Renderer {
	if r, ok := registry[t]; ok {
		return r
	}
	return RendererFunc(renderEmpty)
}

// Options controls a page render.
type Options struct {
	Width      float64
	Height     float64
	Background string
	Selected   string // editable path only
	Preview    bool
}

// Page renders elements onto a canvas. The preview path paints in zIndex
// order, applies entrance animations and omits selection handles.
func Page(elements []domain.Element, opts Options) string {
	els := append([]domain.Element(nil), elements...)
	mode := "edit"
	if opts.Preview {
		mode = "preview"
		sort.SliceStable(els, func(i, j int) bool { return els[i].ZIndex < els[j].ZIndex })
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="canvas" data-mode="%s" style="position:relative;width:%spx;height:%spx;background:%s">`,
		mode, px(opts.Width), px(opts.Height), attr(opts.Background))
	for _, el := range els {
		selected := !opts.Preview && el.ID == opts.Selected
		writeElement(&b, el, selected, opts.Preview)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Element renders a single element without selection or animation.
func Element(el domain.Element) string {
	var b strings.Builder
	writeElement(&b, el, false, false)
	return b.String()
}

func writeElement(b *strings.Builder, el domain.Element, selected, preview bool) {
	class := "el el-" + string(el.Type)
	if selected {
		class += " selected"
	}
	if preview && el.Animation != "" {
		class += " animate-" + el.Animation
	}
	fmt.Fprintf(b, `<div class="%s" data-id="%s" style="%s">`, attr(class), attr(el.ID), wrapperStyle(el))
	inner := For(el.Type)
	if el.Link != "" && el.Type.Linkable() {
		fmt.Fprintf(b, `<a href="%s" target="_blank" rel="noopener">`, attr(el.Link))
		inner.Render(b, el)
		b.WriteString(`</a>`)
	} else {
		inner.Render(b, el)
	}
	if selected {
		writeHandles(b, el)
	}
	b.WriteString(`</div>`)
}

// writeHandles paints resize handles; text elements only resize vertically.
func writeHandles(b *strings.Builder, el domain.Element) {
	handles := []string{"n", "ne", "e", "se", "s", "sw", "w", "nw"}
	if el.Type.IsText() {
		handles = []string{"n", "s"}
	}
	for _, h := range handles {
		fmt.Fprintf(b, `<span class="handle handle-%s"></span>`, h)
	}
}

func wrapperStyle(el domain.Element) string {
	parts := []string{
		"position:absolute",
		"left:" + px(el.X) + "px",
		"top:" + px(el.Y) + "px",
		"width:" + px(el.Width) + "px",
		"height:" + px(el.Height) + "px",
	}
	if el.Rotation != 0 {
		parts = append(parts, "transform:rotate("+px(el.Rotation)+"deg)")
	}
	if o := el.OpacityValue(); o != 1 {
		parts = append(parts, "opacity:"+px(o))
	}
	if el.ZIndex != 0 {
		parts = append(parts, "z-index:"+strconv.Itoa(el.ZIndex))
	}
	return attr(strings.Join(parts, ";"))
}

// boxStyle is the shared fill and border of non-text visuals.
func boxStyle(el domain.Element) string {
	var parts []string
	if el.BackgroundColor != "" {
		parts = append(parts, "background-color:"+el.BackgroundColor)
	}
	if el.BackgroundImage != "" {
		parts = append(parts, "background:"+el.BackgroundImage)
	}
	if el.BorderWidth > 0 {
		color := el.BorderColor
		if color == "" {
			color = "#000000"
		}
		parts = append(parts, fmt.Sprintf("border:%spx solid %s", px(el.BorderWidth), color))
	}
	if el.BorderRadius > 0 {
		parts = append(parts, "border-radius:"+px(el.BorderRadius)+"px")
	}
	parts = append(parts, "width:100%", "height:100%", "box-sizing:border-box")
	return strings.Join(parts, ";")
}

func textStyle(el domain.Element) string {
	parts := []string{
		"font-size:" + px(el.FontSizeValue()) + "px",
		"font-family:" + el.FontFamilyValue(),
		"color:" + el.ColorValue(),
		"text-align:" + el.TextAlignValue(),
		"line-height:" + px(el.LineHeightValue()),
		"margin:0",
	}
	if el.FontWeight != "" {
		parts = append(parts, "font-weight:"+el.FontWeight)
	}
	if el.FontStyle != "" {
		parts = append(parts, "font-style:"+el.FontStyle)
	}
	if el.TextDecoration != "" {
		parts = append(parts, "text-decoration:"+el.TextDecoration)
	}
	if el.BackgroundColor != "" {
		parts = append(parts, "background-color:"+el.BackgroundColor)
	}
	return strings.Join(parts, ";")
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func attr(s string) string {
	return html.EscapeString(s)
}
