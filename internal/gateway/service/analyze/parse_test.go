package analyze

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTopicsDirect(t *testing.T) {
	got, err := ParseTopics(`[{"name":"Data Privacy","description":"GDPR exposure."}]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Data Privacy", got[0].Name)
}

func TestParseTopicsWrappedInProse(t *testing.T) {
	content := "Here are the topics you asked for:\n```json\n" +
		`[{"name":"AI Liability","description":"Who pays when models fail."},` +
		`{"name":"Export Controls","description":"Chip restrictions."}]` +
		"\n```\nLet me know if you need more."
	got, err := ParseTopics(content)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Export Controls", got[1].Name)
}

func TestParseTopicsSkipsNameless(t *testing.T) {
	got, err := ParseTopics(`[{"name":"","description":"x"},{"name":"Kept","description":"y"}]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Kept", got[0].Name)
}

func TestParseTopicsErrors(t *testing.T) {
	cases := []string{
		"",
		"no json here",
		`{"name":"object not array"}`,
		`[{"name":""}]`,
		"prefix [ broken json ] suffix",
	}
	for _, c := range cases {
		if _, err := ParseTopics(c); err == nil {
			t.Fatalf("ParseTopics(%q) succeeded, want error", c)
		}
	}
}
