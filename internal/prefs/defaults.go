package prefs

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Persisted keys. This is the entire stored layout.
const (
	KeyFavorites        = "favorites"
	KeyHiddenApps       = "hidden_apps"
	KeyBadApps          = "bad_apps"
	KeyCustomNamePrefix = "custom_name_"
	KeyFontSize         = "font_size"
	KeyTextStyle        = "app_name_text_style"
	KeyStatusBarVisible = "status_bar_visible"
	KeyDarkMode         = "dark_mode"
)

// First-run values, used whenever a key is unset or holds garbage.
const (
	DefaultFontSize         = FontMedium
	DefaultTextStyle        = AllLowercase
	DefaultDarkMode         = true
	DefaultStatusBarVisible = true
)

func CustomNameKey(id string) string {
	return KeyCustomNamePrefix + id
}

type FontSize int

const (
	FontSmall FontSize = iota
	FontMedium
	FontLarge
	FontXLarge
)

var fontSizeNames = map[FontSize]string{
	FontSmall:  "SMALL",
	FontMedium: "MEDIUM",
	FontLarge:  "LARGE",
	FontXLarge: "XLARGE",
}

// FontSizes lists every size in ascending order.
func FontSizes() []FontSize {
	return []FontSize{FontSmall, FontMedium, FontLarge, FontXLarge}
}

func (f FontSize) String() string {
	if name, ok := fontSizeNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FontSize(%d)", int(f))
}

// Pixels is the row text size.
func (f FontSize) Pixels() int {
	switch f {
	case FontSmall:
		return 20
	case FontLarge:
		return 40
	case FontXLarge:
		return 50
	default:
		return 30
	}
}

func (f FontSize) Label() string {
	switch f {
	case FontSmall:
		return "Small"
	case FontLarge:
		return "Large"
	case FontXLarge:
		return "Extra large"
	default:
		return "Medium"
	}
}

func ParseFontSize(s string) (FontSize, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for size, name := range fontSizeNames {
		if name == upper {
			return size, nil
		}
	}
	return DefaultFontSize, fmt.Errorf("unknown font size %q", s)
}

type TextStyle int

const (
	AllLowercase TextStyle = iota
	LeadingUppercase
)

func (s TextStyle) String() string {
	switch s {
	case AllLowercase:
		return "ALL_LOWERCASE"
	case LeadingUppercase:
		return "LEADING_UPPERCASE"
	default:
		return fmt.Sprintf("TextStyle(%d)", int(s))
	}
}

// Apply renders an app name in this style.
func (s TextStyle) Apply(name string) string {
	switch s {
	case LeadingUppercase:
		r, size := utf8.DecodeRuneInString(name)
		if r == utf8.RuneError {
			return name
		}
		return string(unicode.ToUpper(r)) + name[size:]
	default:
		return strings.ToLower(name)
	}
}

func ParseTextStyle(s string) (TextStyle, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALL_LOWERCASE":
		return AllLowercase, nil
	case "LEADING_UPPERCASE":
		return LeadingUppercase, nil
	default:
		return DefaultTextStyle, fmt.Errorf("unknown text style %q", s)
	}
}
