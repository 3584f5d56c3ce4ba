package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const faqExport = `[
  {
    "category": {
      "name": "Getting Started",
      "all_folders": [
        {
          "name": "Account",
          "articles": [
            {
              "id": 101,
              "title": "How do I reset my password?",
              "description": "<p>Click <b>Forgot password</b> on the login page.</p>",
              "desc_un_html": ""
            },
            {
              "id": 102,
              "title": "What is the platform?",
              "description": "",
              "desc_un_html": "A booking platform for container trucking."
            },
            {
              "id": 103,
              "title": "",
              "description": "",
              "desc_un_html": ""
            }
          ]
        }
      ]
    }
  }
]`

func writeFAQ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Solutions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFAQReader_LoadData(t *testing.T) {
	r := NewFAQReader(writeFAQ(t, faqExport))

	nodes, err := r.LoadData()
	require.NoError(t, err)
	// The empty article is skipped.
	require.Len(t, nodes, 2)

	first := nodes[0]
	assert.Contains(t, first.Text, "FAQ Section")
	assert.Contains(t, first.Text, "Category: Getting Started")
	assert.Contains(t, first.Text, "Folder: Account")
	assert.Contains(t, first.Text, "Question: How do I reset my password?")
	// HTML in the description is stripped when desc_un_html is empty.
	assert.Contains(t, first.Text, "Click Forgot password on the login page.")
	assert.Contains(t, first.Text, "--- End FAQ ---")

	assert.Equal(t, "FAQ", first.Metadata["source_type"])
	assert.Equal(t, "101", first.Metadata["faq_id"])
	assert.Equal(t, "Getting Started", first.Metadata["category"])

	second := nodes[1]
	assert.Contains(t, second.Text, "A booking platform for container trucking.")
}

func TestFAQReader_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFAQReader(filepath.Join(t.TempDir(), "nope.json")).LoadData()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read FAQ file")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := NewFAQReader(writeFAQ(t, "{not json")).LoadData()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse FAQ JSON")
	})

	t.Run("no articles", func(t *testing.T) {
		_, err := NewFAQReader(writeFAQ(t, "[]")).LoadData()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no FAQ articles found")
	})
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"tags removed", "<p>hello <b>world</b></p>", "hello world"},
		{"entities unescaped", "Terms &amp; Conditions", "Terms & Conditions"},
		{"whitespace collapsed", "a\n\n  b\t c", "a b c"},
		{"tags act as separators", "line1<br/>line2", "line1 line2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}
