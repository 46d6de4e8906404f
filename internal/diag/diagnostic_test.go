package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typemend/internal/source"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Diagnostic
	}{
		{
			name: "paren layout",
			line: "src/components/pricing/CountdownTimer.vue(41,13): error TS2339: Property 'onClose' does not exist on type 'ICountdownTimerProps'.",
			want: Diagnostic{
				Severity: SevError,
				Code:     "TS2339",
				Path:     "src/components/pricing/CountdownTimer.vue",
				Pos:      source.LineCol{Line: 41, Col: 13},
				Message:  "Property 'onClose' does not exist on type 'ICountdownTimerProps'.",
			},
		},
		{
			name: "colon layout",
			line: "src/types/components/study.ts:7:3 - error TS2304: Cannot find name 'Foo'.",
			want: Diagnostic{
				Severity: SevError,
				Code:     "TS2304",
				Path:     "src/types/components/study.ts",
				Pos:      source.LineCol{Line: 7, Col: 3},
				Message:  "Cannot find name 'Foo'.",
			},
		},
		{
			name: "declaration file",
			line: "src/env.d.ts(1,1): error TS6133: 'x' is declared but its value is never read.",
			want: Diagnostic{
				Severity: SevError,
				Code:     "TS6133",
				Path:     "src/env.d.ts",
				Pos:      source.LineCol{Line: 1, Col: 1},
				Message:  "'x' is declared but its value is never read.",
			},
		},
		{
			name: "no location",
			line: "error TS5023: Unknown compiler option 'foo'.",
			want: Diagnostic{
				Severity: SevError,
				Code:     "TS5023",
				Message:  "Unknown compiler option 'foo'.",
			},
		},
		{
			name: "coloured output",
			line: "\x1b[96msrc/a.ts\x1b[0m:\x1b[93m2\x1b[0m:\x1b[93m4\x1b[0m - \x1b[91merror\x1b[0m\x1b[90m TS2322: \x1b[0mType 'string' is not assignable to type 'number'.",
			want: Diagnostic{
				Severity: SevError,
				Code:     "TS2322",
				Path:     "src/a.ts",
				Pos:      source.LineCol{Line: 2, Col: 4},
				Message:  "Type 'string' is not assignable to type 'number'.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			require.True(t, ok)
			tt.want.Raw = tt.line
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineIgnoresNoise(t *testing.T) {
	for _, line := range []string{
		"",
		"Found 12 errors in 4 files.",
		"    41       onClose();",
		"             ~~~~~~~",
		"Errors  Files",
	} {
		_, ok := ParseLine(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestCodeCategory(t *testing.T) {
	tests := map[Code]string{
		"TS1005":  "syntax",
		"TS2339":  "type",
		"TS6133":  "build",
		"TS7006":  "strict",
		"TS17004": "advanced",
		"TS18048": "semantic",
		"E42":     "other",
	}
	for code, want := range tests {
		assert.Equal(t, want, code.Category(), "code %s", code)
	}
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "[TS2339]: Property does not exist on type", Code("TS2339").String())
	assert.Equal(t, "[TS9999]", Code("TS9999").String())
	assert.Equal(t, "UNKNOWN", Code("").ID())
}
