package css

import "strings"

type Combinator int

const (
	DescendantCombinator      Combinator = iota // a b
	ChildCombinator                             // a > b
	AdjacentSiblingCombinator                   // a + b
	GeneralSiblingCombinator                    // a ~ b
)

// AttributeSelector is a bracketed test such as [type="checkbox"].
type AttributeSelector struct {
	Name     string
	Operator string // "", "=", "^=", "$=", "*=", "~=", "|="
	Value    string
}

// SelectorPart is one compound selector, e.g. div.item#x[hidden]:first-child.
type SelectorPart struct {
	Element       string
	ID            string
	Classes       []string
	Attributes    []AttributeSelector
	PseudoClasses []string
}

// Selector is a complex selector: compound parts joined by combinators.
// Combinators[i] joins Parts[i] and Parts[i+1].
type Selector struct {
	Raw         string
	Parts       []SelectorPart
	Combinators []Combinator
	Specificity int
}

// SplitSelectorGroup splits "a, b > c" into its comma separated selectors,
// ignoring commas inside brackets or parentheses.
func SplitSelectorGroup(group string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range group {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				if s := strings.TrimSpace(group[start:i]); s != "" {
					out = append(out, s)
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(group[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// ParseSelector parses a single complex selector.
func ParseSelector(raw string) Selector {
	sel := Selector{Raw: strings.TrimSpace(raw)}
	var buf strings.Builder
	pending := DescendantCombinator
	depth := 0

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		if len(sel.Parts) > 0 {
			sel.Combinators = append(sel.Combinators, pending)
		}
		sel.Parts = append(sel.Parts, parseCompound(buf.String()))
		buf.Reset()
		pending = DescendantCombinator
	}

	for _, r := range sel.Raw {
		switch {
		case r == '[' || r == '(':
			depth++
			buf.WriteRune(r)
		case r == ']' || r == ')':
			depth--
			buf.WriteRune(r)
		case depth > 0:
			buf.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		case r == '>':
			flush()
			pending = ChildCombinator
		case r == '+':
			flush()
			pending = AdjacentSiblingCombinator
		case r == '~':
			flush()
			pending = GeneralSiblingCombinator
		default:
			buf.WriteRune(r)
		}
	}
	flush()

	for _, p := range sel.Parts {
		if p.ID != "" {
			sel.Specificity += 100
		}
		sel.Specificity += 10 * (len(p.Classes) + len(p.Attributes) + len(p.PseudoClasses))
		if p.Element != "" && p.Element != "*" {
			sel.Specificity++
		}
	}
	return sel
}

func parseCompound(s string) SelectorPart {
	var part SelectorPart
	i := 0
	ident := func() string {
		start := i
		for i < len(s) && !strings.ContainsRune(".#[:", rune(s[i])) {
			i++
		}
		return s[start:i]
	}

	part.Element = strings.ToLower(ident())
	for i < len(s) {
		c := s[i]
		i++
		switch c {
		case '.':
			if cls := ident(); cls != "" {
				part.Classes = append(part.Classes, cls)
			}
		case '#':
			part.ID = ident()
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				end = len(s) - i
			}
			part.Attributes = append(part.Attributes, parseAttributeSelector(s[i:i+end]))
			i += end + 1
		case ':':
			start := i
			depth := 0
			for i < len(s) {
				if s[i] == '(' {
					depth++
				} else if s[i] == ')' {
					depth--
				} else if depth == 0 && strings.ContainsRune(".#[:", rune(s[i])) {
					break
				}
				i++
			}
			part.PseudoClasses = append(part.PseudoClasses, s[start:i])
		}
	}
	return part
}

func parseAttributeSelector(body string) AttributeSelector {
	for _, op := range []string{"^=", "$=", "*=", "~=", "|=", "="} {
		if idx := strings.Index(body, op); idx >= 0 {
			return AttributeSelector{
				Name:     strings.ToLower(strings.TrimSpace(body[:idx])),
				Operator: op,
				Value:    strings.Trim(strings.TrimSpace(body[idx+len(op):]), `"'`),
			}
		}
	}
	return AttributeSelector{Name: strings.ToLower(strings.TrimSpace(body))}
}
