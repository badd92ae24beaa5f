// Package social describes the studio's outbound social-link buttons.
package social

// Button is a labeled outbound link that opens in a new browsing context.
// It carries presentation hints only and has no behaviour beyond rendering.
type Button struct {
	Href      string `yaml:"href" json:"href"`
	Label     string `yaml:"label" json:"label"`
	AriaLabel string `yaml:"aria_label,omitempty" json:"aria_label,omitempty"`
	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
	Class     string `yaml:"class,omitempty" json:"class,omitempty"`
	// Color is the button background, as a CSS/terminal hex colour.
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
	// Icon is a short glyph or emoji rendered before the label.
	Icon string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// Target and Rel are fixed for every outbound button.
const (
	Target = "_blank"
	Rel    = "noopener noreferrer"
)

// BaseClass is always applied ahead of the caller's Class.
const BaseClass = "social-button"

// AccessibleName defaults to the visible label.
func (b Button) AccessibleName() string {
	if b.AriaLabel != "" {
		return b.AriaLabel
	}
	return b.Label
}

// TitleText defaults to the visible label.
func (b Button) TitleText() string {
	if b.Title != "" {
		return b.Title
	}
	return b.Label
}

// ClassList joins BaseClass with the caller's extra classes.
func (b Button) ClassList() string {
	if b.Class == "" {
		return BaseClass
	}
	return BaseClass + " " + b.Class
}

// HasIcon reports whether an icon should be rendered.
func (b Button) HasIcon() bool {
	return b.Icon != ""
}

// Defaults are the studio's links.
func Defaults() []Button {
	return []Button{
		{Href: "https://wa.me/972500000000", Label: "WhatsApp", Color: "#25D366", Icon: "✆"},
		{Href: "https://www.instagram.com/", Label: "Instagram", Color: "#E1306C", Icon: "◎"},
		{Href: "https://www.facebook.com/", Label: "Facebook", Color: "#1877F2", Icon: "f"},
		{Href: "https://waze.com/ul", Label: "Waze", AriaLabel: "ניווט לסטודיו ב-Waze", Color: "#33CCFF", Icon: "➤"},
	}
}
