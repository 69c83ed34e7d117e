package domain

// Theme selects the callout color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme returns ThemeLight only for exactly "light". Anything else,
// including the empty string, is dark.
func ParseTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// Normalize maps unknown values to the default theme.
func (t Theme) Normalize() Theme {
	return ParseTheme(string(t))
}
