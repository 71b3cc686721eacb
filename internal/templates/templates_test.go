package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	// Every wizard section the flows reference must exist.
	for _, section := range []string{"main", "common", "expense", "income", "interval", "history", "statistics"} {
		assert.NotEmpty(t, catalog.sections[section], "missing section %s", section)
	}
}

func TestRender(t *testing.T) {
	catalog, err := Parse([]byte(`
greet:
  hello: "Привет, {name}!"
  plain: "Без подстановок"
`))
	require.NoError(t, err)

	tests := []struct {
		data    map[string]string
		name    string
		section string
		key     string
		want    string
	}{
		{
			name:    "substitutes placeholders",
			section: "greet",
			key:     "hello",
			data:    map[string]string{"name": "Иван"},
			want:    "Привет, Иван!",
		},
		{
			name:    "no data leaves text untouched",
			section: "greet",
			key:     "plain",
			want:    "Без подстановок",
		},
		{
			name:    "unknown key renders its path",
			section: "greet",
			key:     "missing",
			want:    "greet.missing",
		},
		{
			name:    "unknown section renders its path",
			section: "nope",
			key:     "hello",
			want:    "nope.hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Render(tt.section, tt.key, tt.data))
		})
	}
}

func TestRenderSummarySubstitution(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	text := catalog.Render("expense", "wizardEnd", map[string]string{
		"sum":         "12.50",
		"category":    "🍕",
		"date":        "05.01.2024",
		"description": "Lunch",
	})
	assert.Contains(t, text, "12.50")
	assert.Contains(t, text, "🍕")
	assert.Contains(t, text, "05.01.2024")
	assert.Contains(t, text, "Lunch")
	assert.NotContains(t, text, "{")
}
