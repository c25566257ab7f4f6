package ui

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/pkg/errors"
)

// ParseCSS parses a stylesheet and keeps the rules whose selectors are a single
// .class or #id. Comma-separated selector lists become one rule per selector.
// At-rules and combinators are skipped. Later rules override earlier ones.
func ParseCSS(content string) (*Stylesheet, error) {
	parsed, err := parser.Parse(content)
	if err != nil {
		return nil, errors.Wrap(err, "parse stylesheet")
	}
	sheet := &Stylesheet{}
	for _, r := range parsed.Rules {
		if r.Kind == css.AtRule || len(r.Declarations) == 0 {
			continue
		}
		props := make(map[string]string, len(r.Declarations))
		for _, d := range r.Declarations {
			props[strings.ToLower(d.Property)] = d.Value
		}
		for _, sel := range r.Selectors {
			sel = strings.TrimSpace(sel)
			if !simpleSelector(sel) {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
		}
	}
	return sheet, nil
}

func simpleSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel[1:], " >+~.#:[")
}
