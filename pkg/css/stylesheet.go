package css

import (
	"strings"

	"github.com/pkg/errors"
)

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations map[string]string // property -> value
	order        int
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS stylesheet content into rules. A selector group
// yields one rule per member; malformed rules are skipped.
func ParseStylesheet(css string) (*Stylesheet, error) {
	stylesheet := &Stylesheet{Rules: make([]Rule, 0)}

	css = stripComments(strings.TrimSpace(css))
	if css == "" {
		return stylesheet, nil
	}

	for _, ruleStr := range splitRules(css) {
		rules, err := parseRule(ruleStr)
		if err != nil {
			continue
		}
		for _, r := range rules {
			r.order = len(stylesheet.Rules)
			stylesheet.Rules = append(stylesheet.Rules, r)
		}
	}
	return stylesheet, nil
}

func stripComments(css string) string {
	for {
		start := strings.Index(css, "/*")
		if start < 0 {
			return css
		}
		end := strings.Index(css[start+2:], "*/")
		if end < 0 {
			return css[:start]
		}
		css = css[:start] + css[start+2+end+2:]
	}
}

// splitRules splits CSS into individual rules
func splitRules(css string) []string {
	rules := make([]string, 0)
	depth := 0
	start := 0

	for i, ch := range css {
		if ch == '{' {
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 {
				ruleStr := css[start : i+1]
				if strings.TrimSpace(ruleStr) != "" {
					rules = append(rules, ruleStr)
				}
				start = i + 1
			}
		}
	}
	return rules
}

// parseRule parses a single CSS rule
func parseRule(ruleStr string) ([]Rule, error) {
	bracePos := strings.Index(ruleStr, "{")
	if bracePos == -1 {
		return nil, errors.New("no opening brace found")
	}
	selectorStr := strings.TrimSpace(ruleStr[:bracePos])
	if selectorStr == "" || strings.HasPrefix(selectorStr, "@") {
		return nil, errors.Errorf("unsupported rule %q", selectorStr)
	}

	declEnd := strings.LastIndex(ruleStr, "}")
	if declEnd == -1 {
		declEnd = len(ruleStr)
	}
	declarations := parseDeclarations(ruleStr[bracePos+1 : declEnd])

	var rules []Rule
	for _, s := range SplitSelectorGroup(selectorStr) {
		rules = append(rules, Rule{Selector: ParseSelector(s), Declarations: declarations})
	}
	return rules, nil
}

// parseDeclarations parses CSS declarations into a map
func parseDeclarations(declStr string) map[string]string {
	style := ParseInlineStyle(declStr)
	return style.Properties
}
