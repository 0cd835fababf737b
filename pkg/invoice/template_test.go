package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesCatalogue(t *testing.T) {
	all := Templates()
	require.Len(t, all, 9)

	seen := map[Template]bool{}
	for _, s := range all {
		assert.False(t, seen[s.Template], "duplicate %s", s.Template)
		seen[s.Template] = true
		assert.True(t, s.Template.Valid())
		assert.NotEmpty(t, s.DisplayName)
		assert.NotEmpty(t, s.Placeholder)
		assert.NotEmpty(t, s.Tagline)
	}

	all[0].Placeholder = "mutated"
	assert.Equal(t, "Your Business Name", TemplateClassic.Style().Placeholder)
}

func TestTemplateStyleFallsBackToClassic(t *testing.T) {
	assert.Equal(t, TemplateClassic, Template("baroque").Style().Template)
	assert.False(t, Template("baroque").Valid())
	assert.False(t, Template("").Valid())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "TECH SOLUTIONS", TemplateTechnology.Style().Placeholder)
	assert.Equal(t, "LAW FIRM", TemplateLegal.Style().Placeholder)
	assert.Equal(t, "FINANCIAL SERVICES", TemplateFinance.Style().Placeholder)
}

func TestParseTemplate(t *testing.T) {
	got, err := ParseTemplate("  Finance ")
	require.NoError(t, err)
	assert.Equal(t, TemplateFinance, got)

	_, err = ParseTemplate("baroque")
	assert.Error(t, err)
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#1b5e20", Color{27, 94, 32}.Hex())
	text, err := Color{255, 0, 16}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#ff0010", string(text))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "Partially Paid", StatusPartiallyPaid.Label())
	assert.Equal(t, "Draft", Status("").Label())
	assert.Equal(t, "Draft", Status("weird").Label())

	st, err := ParseStatus("partially-paid")
	require.NoError(t, err)
	assert.Equal(t, StatusPartiallyPaid, st)

	st, err = ParseStatus("overdue")
	require.NoError(t, err)
	assert.Equal(t, StatusOverdue, st)

	_, err = ParseStatus("Overdue")
	assert.Error(t, err)
}
