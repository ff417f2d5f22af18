package std

import (
	"strconv"
	"strings"
	"time"
)

// dateTokens are matched longest first at each position.
var dateTokens = []struct {
	token  string
	format func(t time.Time) string
}{
	{"YYYY", func(t time.Time) string { return pad(t.Year(), 4) }},
	{"YY", func(t time.Time) string { return pad(t.Year()%100, 2) }},
	{"MM", func(t time.Time) string { return pad(int(t.Month()), 2) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"DD", func(t time.Time) string { return pad(t.Day(), 2) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
	{"HH", func(t time.Time) string { return pad(t.Hour(), 2) }},
	{"mm", func(t time.Time) string { return pad(t.Minute(), 2) }},
	{"ss", func(t time.Time) string { return pad(t.Second(), 2) }},
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// FormatDate renders t with the zenkai date tokens YYYY, YY, MM, M, DD, D,
// HH, mm and ss. Other characters are copied through.
func FormatDate(t time.Time, layout string) string {
	var sb strings.Builder
	for i := 0; i < len(layout); {
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(layout[i:], tok.token) {
				sb.WriteString(tok.format(t))
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(layout[i])
			i++
		}
	}
	return sb.String()
}
