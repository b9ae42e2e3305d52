package editor

import "bouncecure/internal/domain"

// Layout is a pre-authored batch of elements inserted in one action.
type Layout struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Elements []domain.Element `json:"elements"`
}

// Layout ids as shown in the toolbox.
const (
	LayoutHeaderContent    = 1
	LayoutTwoColumns       = 2
	LayoutThreeColumns     = 3
	LayoutHeroBanner       = 4
	LayoutProductShowcase  = 5
	LayoutNewsletterFooter = 6
)

func text(t domain.ElementType, x, y, w, h float64, content string) domain.Element {
	el := defaultElement(t)
	el.X, el.Y, el.Width, el.Height = x, y, w, h
	el.Content = content
	return el
}

func box(t domain.ElementType, x, y, w, h float64, bg string) domain.Element {
	el := defaultElement(t)
	el.X, el.Y, el.Width, el.Height = x, y, w, h
	el.BackgroundColor = bg
	return el
}

func image(x, y, w, h float64, src string) domain.Element {
	el := defaultElement(domain.ElementImage)
	el.X, el.Y, el.Width, el.Height = x, y, w, h
	if src != "" {
		el.Src = src
	}
	return el
}

func button(x, y, w, h float64, label, link string) domain.Element {
	el := defaultElement(domain.ElementButton)
	el.X, el.Y, el.Width, el.Height = x, y, w, h
	el.Content = label
	el.Link = link
	return el
}

func centered(el domain.Element) domain.Element {
	el.TextAlign = "center"
	return el
}

func onDark(el domain.Element) domain.Element {
	el.Color = "#ffffff"
	return el
}

// Layouts returns every predefined layout. Element ids are empty; the
// controller assigns fresh ids on insertion.
func Layouts() []Layout {
	return []Layout{
		{
			ID:   LayoutHeaderContent,
			Name: "Header + Content",
			Elements: []domain.Element{
				box(domain.ElementRectangle, 0, 0, 600, 120, "#1e3a8a"),
				onDark(centered(text(domain.ElementHeading, 50, 25, 500, 45, "Welcome to Our Newsletter"))),
				onDark(centered(text(domain.ElementParagraph, 100, 75, 400, 30, "Fresh news, delivered monthly"))),
				image(50, 150, 500, 220, ""),
				text(domain.ElementSubheading, 50, 390, 500, 32, "What's New This Month"),
				text(domain.ElementParagraph, 50, 430, 500, 90, "Discover the latest updates, product launches and stories from our team. We have been busy building things we think you will love."),
				button(225, 540, 150, 45, "Shop Now", "https://example.com/shop"),
			},
		},
		{
			ID:   LayoutTwoColumns,
			Name: "Two Columns",
			Elements: []domain.Element{
				centered(text(domain.ElementHeading, 50, 30, 500, 45, "Two Great Reasons")),
				image(50, 100, 240, 160, ""),
				text(domain.ElementSubheading, 50, 275, 240, 32, "First Feature"),
				text(domain.ElementParagraph, 50, 315, 240, 80, "Describe the first feature and why it matters to your readers."),
				image(310, 100, 240, 160, ""),
				text(domain.ElementSubheading, 310, 275, 240, 32, "Second Feature"),
				text(domain.ElementParagraph, 310, 315, 240, 80, "Describe the second feature and why it matters to your readers."),
			},
		},
		{
			ID:   LayoutThreeColumns,
			Name: "Three Columns",
			Elements: []domain.Element{
				centered(text(domain.ElementHeading, 50, 30, 500, 45, "Our Services")),
				box(domain.ElementCard, 30, 100, 170, 220, "#f3f4f6"),
				centered(text(domain.ElementSubheading, 40, 115, 150, 32, "Design")),
				centered(text(domain.ElementParagraph, 40, 160, 150, 120, "Beautiful layouts crafted for every inbox.")),
				box(domain.ElementCard, 215, 100, 170, 220, "#f3f4f6"),
				centered(text(domain.ElementSubheading, 225, 115, 150, 32, "Deliver")),
				centered(text(domain.ElementParagraph, 225, 160, 150, 120, "Verified lists that reach real people.")),
				box(domain.ElementCard, 400, 100, 170, 220, "#f3f4f6"),
				centered(text(domain.ElementSubheading, 410, 115, 150, 32, "Measure")),
				centered(text(domain.ElementParagraph, 410, 160, 150, 120, "Track opens, clicks and bounces.")),
			},
		},
		{
			ID:   LayoutHeroBanner,
			Name: "Hero Banner",
			Elements: []domain.Element{
				box(domain.ElementRectangle, 0, 0, 600, 320, "#111827"),
				onDark(centered(text(domain.ElementHeading, 50, 80, 500, 50, "Big Announcement"))),
				onDark(centered(text(domain.ElementParagraph, 75, 150, 450, 60, "Something new is here. Be the first to try it."))),
				button(225, 230, 150, 45, "Learn More", "https://example.com"),
			},
		},
		{
			ID:   LayoutProductShowcase,
			Name: "Product Showcase",
			Elements: []domain.Element{
				centered(text(domain.ElementHeading, 50, 30, 500, 45, "Featured Product")),
				image(150, 100, 300, 240, ""),
				centered(text(domain.ElementSubheading, 100, 360, 400, 32, "Product Name")),
				centered(text(domain.ElementParagraph, 100, 400, 400, 30, "$49.99")),
				button(225, 445, 150, 45, "Buy Now", "https://example.com/product"),
			},
		},
		{
			ID:   LayoutNewsletterFooter,
			Name: "Newsletter Footer",
			Elements: []domain.Element{
				box(domain.ElementLine, 50, 20, 500, 2, "#e5e7eb"),
				centered(text(domain.ElementParagraph, 50, 40, 500, 40, "You are receiving this email because you subscribed to our newsletter.")),
				socialLink(220, 95, "facebook", "https://facebook.com"),
				socialLink(260, 95, "twitter", "https://twitter.com"),
				socialLink(300, 95, "instagram", "https://instagram.com"),
				centered(text(domain.ElementParagraph, 50, 145, 500, 30, "Unsubscribe | Update preferences")),
			},
		},
	}
}

func socialLink(x, y float64, platform, link string) domain.Element {
	el := defaultElement(domain.ElementSocial)
	el.X, el.Y, el.Width, el.Height = x, y, 32, 32
	el.Content = platform
	el.Link = link
	return el
}

// fallbackLayout is inserted for unknown layout ids.
func fallbackLayout() Layout {
	return Layout{
		Name: "Default",
		Elements: []domain.Element{
			text(domain.ElementHeading, 50, 50, 500, 45, "Your Heading"),
			text(domain.ElementParagraph, 50, 110, 500, 80, "Add your content here."),
		},
	}
}

// LayoutByID returns the layout with the given id, or the fallback layout.
func LayoutByID(id int) Layout {
	for _, l := range Layouts() {
		if l.ID == id {
			return l
		}
	}
	return fallbackLayout()
}
