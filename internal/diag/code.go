package diag

import (
	"strings"
)

// Code is a checker diagnostic code such as "TS2339".
type Code string

// codeCategories maps TypeScript code prefixes to a coarse category. Longer
// prefixes are matched first.
var codeCategories = []struct {
	prefix   string
	category string
}{
	{"TS17", "advanced"},
	{"TS18", "semantic"},
	{"TS1", "syntax"},
	{"TS2", "type"},
	{"TS3", "module"},
	{"TS4", "declaration"},
	{"TS5", "config"},
	{"TS6", "build"},
	{"TS7", "strict"},
	{"TS8", "jsx"},
	{"TS9", "compiler"},
}

var codeTitles = map[Code]string{
	"TS2304":  "Cannot find name",
	"TS2305":  "Module has no exported member",
	"TS2307":  "Cannot find module",
	"TS2322":  "Type is not assignable",
	"TS2339":  "Property does not exist on type",
	"TS2345":  "Argument type is not assignable to parameter type",
	"TS2353":  "Object literal may only specify known properties",
	"TS2531":  "Object is possibly null",
	"TS2532":  "Object is possibly undefined",
	"TS2551":  "Property does not exist (did you mean...)",
	"TS2554":  "Expected a different number of arguments",
	"TS2769":  "No overload matches this call",
	"TS6133":  "Declared but never read",
	"TS7006":  "Parameter implicitly has an 'any' type",
	"TS18047": "Value is possibly null",
	"TS18048": "Value is possibly undefined",
}

// ID returns the code as printed by the checker.
func (c Code) ID() string {
	if c == "" {
		return "UNKNOWN"
	}
	return string(c)
}

// Category returns the coarse category of a TypeScript code, or "other".
func (c Code) Category() string {
	s := string(c)
	if !strings.HasPrefix(s, "TS") {
		return "other"
	}
	if len(s) == 7 { // TS + five digits
		for _, cc := range codeCategories[:2] {
			if strings.HasPrefix(s, cc.prefix) {
				return cc.category
			}
		}
	}
	for _, cc := range codeCategories[2:] {
		if strings.HasPrefix(s, cc.prefix) {
			return cc.category
		}
	}
	return "other"
}

// Title returns a short description for well-known codes, or "".
func (c Code) Title() string {
	return codeTitles[c]
}

func (c Code) String() string {
	if title := c.Title(); title != "" {
		return "[" + c.ID() + "]: " + title
	}
	return "[" + c.ID() + "]"
}
