package render

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"bouncecure/internal/domain"
)

// clipPaths give the polygon shapes their outline.
var clipPaths = map[domain.ElementType]string{
	domain.ElementTriangle: "polygon(50% 0%, 0% 100%, 100% 100%)",
	domain.ElementStar:     "polygon(50% 0%, 61% 35%, 98% 35%, 68% 57%, 79% 91%, 50% 70%, 21% 91%, 32% 57%, 2% 35%, 39% 35%)",
	domain.ElementHexagon:  "polygon(25% 0%, 75% 0%, 100% 50%, 75% 100%, 25% 100%, 0% 50%)",
	domain.ElementArrow:    "polygon(0% 30%, 65% 30%, 65% 0%, 100% 50%, 65% 100%, 65% 70%, 0% 70%)",
}

var socialGlyphs = map[string]string{
	"facebook":  "f",
	"twitter":   "𝕏",
	"instagram": "◎",
	"linkedin":  "in",
	"youtube":   "▶",
}

// richTextPolicy is applied to authored rich text. It keeps inline
// formatting and links and drops scripts, event handlers and javascript URLs.
var richTextPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyles("color", "background-color", "font-weight", "font-style",
		"text-decoration", "font-size", "text-align").Globally()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// richText returns the element content as safe markup.
func richText(el domain.Element) string {
	return richTextPolicy.Sanitize(el.Content)
}

func init() {
	textTag := func(tag string) Renderer {
		return RendererFunc(func(b *strings.Builder, el domain.Element) {
			fmt.Fprintf(b, `<%s style="%s">%s</%s>`, tag, attr(textStyle(el)), richText(el), tag)
		})
	}
	Register(domain.ElementHeading, textTag("h1"))
	Register(domain.ElementSubheading, textTag("h2"))
	Register(domain.ElementParagraph, textTag("p"))
	Register(domain.ElementBlockquote, RendererFunc(renderBlockquote))

	Register(domain.ElementButton, RendererFunc(renderButton))
	Register(domain.ElementCard, RendererFunc(renderBox))
	Register(domain.ElementFrame, RendererFunc(renderBox))
	Register(domain.ElementRectangle, RendererFunc(renderBox))
	Register(domain.ElementCircle, RendererFunc(renderCircle))
	Register(domain.ElementLine, RendererFunc(renderBox))
	for t := range clipPaths {
		Register(t, RendererFunc(renderPolygon))
	}

	Register(domain.ElementImage, RendererFunc(renderImage))
	Register(domain.ElementVideo, RendererFunc(renderVideo))
	Register(domain.ElementAudio, RendererFunc(renderAudio))

	Register(domain.ElementInput, RendererFunc(renderInput))
	Register(domain.ElementCheckbox, RendererFunc(renderCheckbox))
	Register(domain.ElementIcon, RendererFunc(renderIcon))
	Register(domain.ElementSocial, RendererFunc(renderSocial))
}

func renderEmpty(b *strings.Builder, el domain.Element) {
	fmt.Fprintf(b, `<div style="%s"></div>`, attr(boxStyle(el)))
}

func renderBox(b *strings.Builder, el domain.Element) {
	renderEmpty(b, el)
}

func renderCircle(b *strings.Builder, el domain.Element) {
	style := boxStyle(el) + ";border-radius:50%"
	fmt.Fprintf(b, `<div style="%s"></div>`, attr(style))
}

func renderPolygon(b *strings.Builder, el domain.Element) {
	style := boxStyle(el) + ";clip-path:" + clipPaths[el.Type]
	fmt.Fprintf(b, `<div style="%s"></div>`, attr(style))
}

func renderBlockquote(b *strings.Builder, el domain.Element) {
	style := textStyle(el)
	if el.BorderWidth > 0 {
		color := el.BorderColor
		if color == "" {
			color = "#000000"
		}
		style += fmt.Sprintf(";border-left:%spx solid %s;padding-left:12px", px(el.BorderWidth), color)
	}
	fmt.Fprintf(b, `<blockquote style="%s">%s</blockquote>`, attr(style), richText(el))
}

func renderButton(b *strings.Builder, el domain.Element) {
	style := textStyle(el) + ";" + boxStyle(el) + ";cursor:pointer"
	fmt.Fprintf(b, `<button type="button" style="%s">%s</button>`, attr(style), richText(el))
}

func renderImage(b *strings.Builder, el domain.Element) {
	style := "width:100%;height:100%;object-fit:cover"
	if el.BorderRadius > 0 {
		style += ";border-radius:" + px(el.BorderRadius) + "px"
	}
	fmt.Fprintf(b, `<img src="%s" alt="%s" style="%s">`, attr(el.Src), attr(el.Alt), attr(style))
}

func renderVideo(b *strings.Builder, el domain.Element) {
	fmt.Fprintf(b, `<video src="%s" controls style="width:100%%;height:100%%"></video>`, attr(el.Src))
}

func renderAudio(b *strings.Builder, el domain.Element) {
	fmt.Fprintf(b, `<audio src="%s" controls style="width:100%%"></audio>`, attr(el.Src))
}

func renderInput(b *strings.Builder, el domain.Element) {
	style := textStyle(el) + ";" + boxStyle(el)
	fmt.Fprintf(b, `<input type="text" placeholder="%s" value="%s" style="%s">`,
		attr(el.Placeholder), attr(el.Content), attr(style))
}

func renderCheckbox(b *strings.Builder, el domain.Element) {
	checked := ""
	if el.Checked {
		checked = " checked"
	}
	fmt.Fprintf(b, `<label style="%s"><input type="checkbox"%s> %s</label>`,
		attr(textStyle(el)), checked, attr(el.Content))
}

func renderIcon(b *strings.Builder, el domain.Element) {
	style := fmt.Sprintf("font-size:%spx;color:%s;line-height:1", px(minf(el.Width, el.Height)), el.ColorValue())
	fmt.Fprintf(b, `<span class="icon icon-%s" style="%s"></span>`, attr(el.Content), attr(style))
}

func renderSocial(b *strings.Builder, el domain.Element) {
	glyph, ok := socialGlyphs[strings.ToLower(el.Content)]
	if !ok {
		glyph = el.Content
	}
	style := textStyle(el) + ";" + boxStyle(el)
	fmt.Fprintf(b, `<span class="social social-%s" style="%s">%s</span>`,
		attr(strings.ToLower(el.Content)), attr(style), attr(glyph))
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
