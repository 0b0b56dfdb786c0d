// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"slices"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// nerdFontTerminals commonly ship with a patched font
var nerdFontTerminals = []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}

// detectNerdFonts checks HACKCTL_NERD_FONTS first, then the terminal program
func detectNerdFonts() bool {
	if env := os.Getenv("HACKCTL_NERD_FONTS"); env != "" {
		return env == "1" || strings.EqualFold(env, "true")
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	return slices.ContainsFunc(nerdFontTerminals, func(t string) bool {
		return strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t))
	})
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Font Awesome codepoints from the Nerd Font set
var (
	// Records
	Hackathon = Icon{"", "★"} // fa-trophy
	Calendar  = Icon{"", "▦"} // fa-calendar
	Team      = Icon{"", "⚇"} // fa-users
	Person    = Icon{"", "☺"} // fa-user
	Bell      = Icon{"", "♪"} // fa-bell
	Live      = Icon{"", "●"} // fa-circle
	Draft     = Icon{"", "○"} // fa-circle-o

	// Status indicators
	CheckOK  = Icon{"", "✓"} // fa-check-circle
	Warning  = Icon{"", "⚠"} // fa-exclamation-triangle
	Critical = Icon{"", "✗"} // fa-times-circle
	Info     = Icon{"", "ℹ"} // fa-info-circle

	// Actions
	Search  = Icon{"", "⌕"} // fa-search
	Edit    = Icon{"", "✎"} // fa-pencil
	Delete  = Icon{"", "⌫"} // fa-trash
	Toggle  = Icon{"", "⇄"} // fa-toggle-on
	Save    = Icon{"", "▼"} // fa-floppy-o
	Publish = Icon{"", "↑"} // fa-rocket
	Refresh = Icon{"", "↻"} // fa-refresh
	Back    = Icon{"", "←"} // fa-arrow-left
	Quit    = Icon{"", "×"} // fa-sign-out

	// Application
	App = Icon{"", "◈"} // fa-code
)
