package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("fields and body", func(t *testing.T) {
		doc, err := Parse([]byte("---\ntitle: Hello\ntags:\n  - go\n  - web\nfeatured: true\n---\n# Heading\n\nBody text\n"))
		require.NoError(t, err)
		require.Equal(t, "Hello", doc.Fields["title"])
		require.Equal(t, true, doc.Fields["featured"])
		require.Equal(t, []any{"go", "web"}, doc.Fields["tags"])
		require.Equal(t, "# Heading\n\nBody text\n", doc.Body)
	})

	t.Run("windows line endings", func(t *testing.T) {
		doc, err := Parse([]byte("---\r\ntitle: Hi\r\n---\r\nbody\r\n"))
		require.NoError(t, err)
		require.Equal(t, "Hi", doc.Fields["title"])
		require.Equal(t, "body\n", doc.Body)
	})

	t.Run("no frontmatter", func(t *testing.T) {
		doc, err := Parse([]byte("just markdown"))
		require.NoError(t, err)
		require.Empty(t, doc.Fields)
		require.Equal(t, "just markdown", doc.Body)
	})

	t.Run("empty header", func(t *testing.T) {
		doc, err := Parse([]byte("---\n---\nbody"))
		require.NoError(t, err)
		require.Empty(t, doc.Fields)
		require.Equal(t, "body", doc.Body)
	})

	t.Run("unterminated header", func(t *testing.T) {
		_, err := Parse([]byte("---\ntitle: broken\nbody"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("---\ntitle: [unclosed\n---\nbody"))
		require.Error(t, err)
	})
}

func TestRenderThenParse(t *testing.T) {
	t.Parallel()

	out, err := Render(Document{
		Fields: map[string]any{
			"title":    "Hello World!",
			"date":     "2024-01-01",
			"readTime": 5,
			"tags":     []string{"go"},
		},
		Body: "Content",
	})
	require.NoError(t, err)
	require.Contains(t, string(out), "---\n")

	doc, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, "Hello World!", doc.Fields["title"])
	require.Equal(t, 5, doc.Fields["readTime"])
	require.Equal(t, "Content\n", doc.Body)
}
