package text

import (
	"strings"
	"sync"

	"github.com/fogleman/gg"
)

// baseFaceHeight is the pixel height of gg's built-in face.
const baseFaceHeight = 13.0

// Measurer measures strings with a TrueType font, or with gg's built-in
// bitmap face scaled to the requested size when no font is configured or
// the font fails to load.
type Measurer struct {
	FontPath string

	mu    sync.Mutex
	faces map[float64]*gg.Context
	base  *gg.Context
}

// NewMeasurer returns a measurer for the font at fontPath. An empty path
// selects the built-in face.
func NewMeasurer(fontPath string) *Measurer {
	return &Measurer{FontPath: fontPath, faces: make(map[float64]*gg.Context)}
}

var defaultMeasurer = NewMeasurer("")

// Default returns the shared built-in face measurer.
func Default() *Measurer {
	return defaultMeasurer
}

func (m *Measurer) context(fontSize float64) (*gg.Context, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FontPath != "" {
		if dc, ok := m.faces[fontSize]; ok {
			return dc, 1
		}
		dc := gg.NewContext(1, 1)
		if err := dc.LoadFontFace(m.FontPath, fontSize); err == nil {
			if m.faces == nil {
				m.faces = make(map[float64]*gg.Context)
			}
			m.faces[fontSize] = dc
			return dc, 1
		}
	}
	if m.base == nil {
		m.base = gg.NewContext(1, 1)
	}
	return m.base, fontSize / baseFaceHeight
}

// MeasureText returns the width and height of a single line of text.
func (m *Measurer) MeasureText(text string, fontSize float64) (width, height float64) {
	if fontSize <= 0 {
		return 0, 0
	}
	dc, scale := m.context(fontSize)
	m.mu.Lock()
	w, h := dc.MeasureString(text)
	m.mu.Unlock()
	return w * scale, h * scale
}

// MeasureText measures with the default measurer.
func MeasureText(text string, fontSize float64) (width, height float64) {
	return defaultMeasurer.MeasureText(text, fontSize)
}

// BreakTextIntoLines breaks text into lines that fit within maxWidth. A
// word wider than maxWidth gets a line of its own.
func (m *Measurer) BreakTextIntoLines(text string, fontSize, maxWidth float64) []string {
	words := SplitIntoWords(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0)
	currentLine := ""
	for _, word := range words {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if w, _ := m.MeasureText(testLine, fontSize); w <= maxWidth || currentLine == "" {
			currentLine = testLine
			continue
		}
		lines = append(lines, currentLine)
		currentLine = word
	}
	return append(lines, currentLine)
}

// BreakTextIntoLines breaks with the default measurer.
func BreakTextIntoLines(text string, fontSize, maxWidth float64) []string {
	return defaultMeasurer.BreakTextIntoLines(text, fontSize, maxWidth)
}

// SplitIntoWords splits text on runs of whitespace.
func SplitIntoWords(text string) []string {
	return strings.Fields(text)
}

// CollapseWhitespace folds whitespace runs into single spaces, as white-space:
// normal does.
func CollapseWhitespace(text string) string {
	var sb strings.Builder
	space := false
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}
