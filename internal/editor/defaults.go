package editor

import "bouncecure/internal/domain"

// Placeholder media used for freshly inserted elements.
const (
	DefaultImageSrc = "https://images.unsplash.com/photo-1557683316-973673baf926?w=400&h=300&fit=crop"
	DefaultVideoSrc = "https://www.w3schools.com/html/mov_bbb.mp4"
	DefaultAudioSrc = "https://www.w3schools.com/html/horse.mp3"
)

// defaultElement returns the type-dependent starting element for t.
// Unrecognized types get a generic empty element of the requested type.
func defaultElement(t domain.ElementType) domain.Element {
	el := domain.Element{Type: t}
	switch t {
	case domain.ElementHeading:
		el.Width, el.Height = 200, 40
		el.Content = "Heading"
		el.FontSize = 32
		el.FontWeight = "bold"
	case domain.ElementSubheading:
		el.Width, el.Height = 250, 32
		el.Content = "Subheading"
		el.FontSize = 24
		el.FontWeight = "600"
	case domain.ElementParagraph:
		el.Width, el.Height = 300, 80
		el.Content = "Start typing your paragraph here..."
		el.FontSize = 16
	case domain.ElementBlockquote:
		el.Width, el.Height = 300, 60
		el.Content = "“A quote worth sharing.”"
		el.FontSize = 18
		el.FontStyle = "italic"
		el.BorderColor = "#6366f1"
		el.BorderWidth = 4
	case domain.ElementButton:
		el.Width, el.Height = 120, 40
		el.Content = "Click Me"
		el.BackgroundColor = "#3b82f6"
		el.Color = "#ffffff"
		el.BorderRadius = 6
		el.TextAlign = "center"
	case domain.ElementCard:
		el.Width, el.Height = 250, 150
		el.BackgroundColor = "#ffffff"
		el.BorderColor = "#e5e7eb"
		el.BorderWidth = 1
		el.BorderRadius = 8
	case domain.ElementRectangle:
		el.Width, el.Height = 150, 100
		el.BackgroundColor = "#3b82f6"
	case domain.ElementCircle:
		el.Width, el.Height = 100, 100
		el.BackgroundColor = "#10b981"
		el.BorderRadius = 50
	case domain.ElementTriangle:
		el.Width, el.Height = 100, 100
		el.BackgroundColor = "#f59e0b"
	case domain.ElementStar:
		el.Width, el.Height = 100, 100
		el.BackgroundColor = "#eab308"
	case domain.ElementHexagon:
		el.Width, el.Height = 100, 100
		el.BackgroundColor = "#8b5cf6"
	case domain.ElementArrow:
		el.Width, el.Height = 120, 60
		el.BackgroundColor = "#ef4444"
	case domain.ElementLine:
		el.Width, el.Height = 200, 4
		el.BackgroundColor = "#111827"
	case domain.ElementImage:
		el.Width, el.Height = 200, 150
		el.Src = DefaultImageSrc
		el.Alt = "Image"
	case domain.ElementVideo:
		el.Width, el.Height = 320, 180
		el.Src = DefaultVideoSrc
	case domain.ElementAudio:
		el.Width, el.Height = 300, 54
		el.Src = DefaultAudioSrc
	case domain.ElementFrame:
		el.Width, el.Height = 300, 200
		el.BorderColor = "#9ca3af"
		el.BorderWidth = 2
	case domain.ElementInput:
		el.Width, el.Height = 200, 40
		el.Placeholder = "Enter text..."
		el.BorderColor = "#d1d5db"
		el.BorderWidth = 1
		el.BorderRadius = 4
	case domain.ElementCheckbox:
		el.Width, el.Height = 160, 24
		el.Content = "Checkbox label"
	case domain.ElementIcon:
		el.Width, el.Height = 48, 48
		el.Content = "star"
		el.Color = "#3b82f6"
	case domain.ElementSocial:
		el.Width, el.Height = 160, 40
		el.Content = "facebook"
		el.Link = "https://facebook.com"
	default:
		el.Width, el.Height = 100, 100
	}
	return el
}

// DefaultSize returns the size a freshly added element of type t gets.
func DefaultSize(t domain.ElementType) (width, height float64) {
	el := defaultElement(t)
	return el.Width, el.Height
}
