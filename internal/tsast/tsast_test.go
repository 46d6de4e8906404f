package tsast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pricingTS = `/**
 * Pricing Component Types
 */

export interface ICountdownTimerProps {
  endsAt: Date;
  labels?: { days: string; hours: string };
  // closing brace } inside a comment
  format?: "short" | "long";
  onTick(remaining: number): void;
}

interface IInternalProps {
  hidden: boolean;
}

export interface IModernPricingCardProps {}

declare module "vue" {
  export interface INestedProps {
    "quoted-key": string;
  }
}
`

func parsePricing(t *testing.T) *File {
	t.Helper()
	f, err := Parse(context.Background(), "pricing.ts", []byte(pricingTS))
	require.NoError(t, err)
	return f
}

func TestParseFindsInterfaces(t *testing.T) {
	f := parsePricing(t)

	assert.False(t, f.HasErrors)
	names := make([]string, 0, len(f.Interfaces))
	for _, i := range f.Interfaces {
		names = append(names, i.Name)
	}
	assert.Equal(t, []string{"ICountdownTimerProps", "IInternalProps", "IModernPricingCardProps", "INestedProps"}, names)
}

func TestLookupNestedBraces(t *testing.T) {
	f := parsePricing(t)

	iface, ok := f.Lookup("ICountdownTimerProps")
	require.True(t, ok)
	require.True(t, iface.Complete)

	assert.Equal(t, byte('{'), pricingTS[iface.Open])
	assert.Equal(t, byte('}'), pricingTS[iface.Close])
	assert.Equal(t, "\n}", pricingTS[iface.Close-1:iface.Close+1])
	assert.Equal(t, "export interface", pricingTS[iface.Start:iface.Start+16])

	assert.True(t, iface.HasMember("endsAt"))
	assert.True(t, iface.HasMember("labels"))
	assert.True(t, iface.HasMember("format"))
	assert.True(t, iface.HasMember("onTick"))
	assert.False(t, iface.HasMember("days"))
	assert.Equal(t, "  ", iface.MemberIndent("\t"))
}

func TestLookupRequiresExport(t *testing.T) {
	f := parsePricing(t)

	_, ok := f.Lookup("IInternalProps")
	assert.False(t, ok)
	_, ok = f.Lookup("IMissingProps")
	assert.False(t, ok)
}

func TestEmptyAndNestedInterfaces(t *testing.T) {
	f := parsePricing(t)

	empty, ok := f.Lookup("IModernPricingCardProps")
	require.True(t, ok)
	assert.Empty(t, empty.Members)
	assert.Equal(t, "  ", empty.MemberIndent("  "))
	assert.Equal(t, empty.Open+1, empty.Close)

	nested, ok := f.Lookup("INestedProps")
	require.True(t, ok)
	assert.True(t, nested.HasMember("quoted-key"))
	assert.Equal(t, "    ", nested.MemberIndent("  "))
}

func TestLineIndent(t *testing.T) {
	src := []byte("a\n  b\n\tc x")
	assert.Equal(t, "", lineIndent(src, 0))
	assert.Equal(t, "  ", lineIndent(src, 4))
	assert.Equal(t, "\t", lineIndent(src, 7))
	assert.Equal(t, "", lineIndent(src, 9))
}

const buttonTSX = `export interface IButtonProps {
  label: string;
}

export const Button = (p: IButtonProps) => <button>{p.label}</button>;
`

func TestParseTSXUsesJSXGrammar(t *testing.T) {
	f, err := Parse(context.Background(), "Button.tsx", []byte(buttonTSX))
	require.NoError(t, err)
	assert.False(t, f.HasErrors)

	iface, ok := f.Lookup("IButtonProps")
	require.True(t, ok)
	assert.True(t, iface.HasMember("label"))

	plain, err := Parse(context.Background(), "Button.ts", []byte(buttonTSX))
	require.NoError(t, err)
	assert.True(t, plain.HasErrors)
}
