// Package infer guesses a TypeScript type annotation from a property name.
//
// The guess is lexical only and is meant as a suggestion for human review.
package infer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Annotations produced by Type.
const (
	Boolean  = "boolean"
	Number   = "number"
	String   = "string"
	Callback = "() => void"
	Getter   = "(...args: any[]) => any"
	Unknown  = "unknown"
)

type rule struct {
	tokens []string
	typ    string
}

// Substring rules, checked against the lower-cased name in this order.
var substringRules = []rule{
	{[]string{"show", "is", "has", "auto", "dismissible", "disabled"}, Boolean},
	{[]string{"count", "index", "total", "width", "height", "delay", "duration"}, Number},
	{[]string{"class", "style", "variant", "size", "type", "platform", "target", "id"}, String},
}

// Prefix rules, checked against the name as written.
var prefixRules = []rule{
	{[]string{"handle", "on"}, Callback},
	{[]string{"get"}, Getter},
}

// Type returns the inferred annotation for name. The first matching rule wins.
func Type(name string) string {
	// Caser values carry state, so one is built per call.
	lower := cases.Lower(language.Und).String(name)
	for _, r := range substringRules {
		for _, tok := range r.tokens {
			if strings.Contains(lower, tok) {
				return r.typ
			}
		}
	}
	for _, r := range prefixRules {
		for _, tok := range r.tokens {
			if strings.HasPrefix(name, tok) {
				return r.typ
			}
		}
	}
	return Unknown
}

// Member renders an optional interface member declaration without indentation.
func Member(name string) string {
	return name + "?: " + Type(name) + ";"
}
