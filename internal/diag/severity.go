package diag

// Severity is the checker's category word for a diagnostic.
type Severity uint8

const (
	// SevInfo covers "message" lines such as TS6194 and anything unknown.
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityWords = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

// String returns the lower-case word used in short output.
func (s Severity) String() string {
	if int(s) < len(severityWords) {
		return severityWords[s]
	}
	return "unknown"
}

// ParseSeverity maps the checker's severity word to a Severity.
func ParseSeverity(word string) Severity {
	switch word {
	case "error":
		return SevError
	case "warning":
		return SevWarning
	default:
		return SevInfo
	}
}
