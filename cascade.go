package nanosvg

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// cssRule is one flattened selector/declaration-list pair out of a
// <style> block. Only simple selectors are matched (tag, .class, #id,
// tag.class, or *) -- no combinators, attribute selectors, or
// pseudo-classes, per spec.md's subset.
type cssRule struct {
	selector string
	decls    []string // "prop:value" strings, in source order
}

// parseStyleBlock tokenizes a <style> element's text content with
// tdewolff/parse/v2/css, the same grammar walk the teacher's svg.go
// TextToken/instyle branch performs, and flattens it into cssRule
// values instead of the teacher's map[selector][]string.
func parseStyleBlock(text string) []cssRule {
	parser := css.NewParser(parse.NewInputString(text), false)
	var rules []cssRule
	var selectors []string
	var decls []string
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.QualifiedRuleGrammar, css.BeginRulesetGrammar:
			var sel []string
			for _, v := range parser.Values() {
				switch v.TokenType {
				case css.DelimToken, css.IdentToken, css.HashToken:
					sel = append(sel, string(v.Data))
				case css.WhitespaceToken:
					sel = append(sel, " ")
				}
			}
			if len(sel) != 0 {
				selectors = append(selectors, strings.TrimSpace(strings.Join(sel, "")))
			}
		case css.DeclarationGrammar:
			var val strings.Builder
			for _, v := range parser.Values() {
				val.Write(v.Data)
			}
			decls = append(decls, string(data)+":"+val.String())
		case css.EndRulesetGrammar, css.ErrorGrammar:
			for _, sel := range selectors {
				rules = append(rules, cssRule{selector: sel, decls: append([]string(nil), decls...)})
			}
			selectors = nil
			decls = nil
			if gt == css.ErrorGrammar {
				return rules
			}
		}
	}
}

// applyCascade applies every rule whose selector matches (tag, id,
// classes) onto frame, in stylesheet order -- later rules win, matching
// the teacher's append-only svg.styles application order.
func applyCascade(rules []cssRule, tag, id string, classes []string, frame *attrFrame) {
	for _, r := range rules {
		if !selectorMatches(r.selector, tag, id, classes) {
			continue
		}
		for _, d := range r.decls {
			k, v, ok := strings.Cut(d, ":")
			if ok {
				frame.applyAttr(strings.TrimSpace(k), strings.TrimSpace(v))
			}
		}
	}
}

func selectorMatches(sel, tag, id string, classes []string) bool {
	if sel == "*" {
		return true
	}
	if strings.HasPrefix(sel, "#") {
		return sel[1:] == id
	}
	if strings.HasPrefix(sel, ".") {
		return hasClass(classes, sel[1:])
	}
	if i := strings.IndexByte(sel, '.'); i >= 0 {
		selTag, selClass := sel[:i], sel[i+1:]
		if selTag != "" && selTag != tag {
			return false
		}
		return hasClass(classes, selClass)
	}
	return sel == tag
}

func hasClass(classes []string, c string) bool {
	for _, cl := range classes {
		if cl == c {
			return true
		}
	}
	return false
}
