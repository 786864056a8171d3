// Package frontmatter reads and writes Markdown documents that start with a
// YAML metadata block delimited by "---" lines.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

type Document struct {
	Fields map[string]any
	Body   string
}

// Parse splits raw into its frontmatter fields and Markdown body. A document
// without a leading delimiter has no fields and is all body.
func Parse(raw []byte) (Document, error) {
	text := strings.TrimPrefix(string(raw), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	doc := Document{Fields: map[string]any{}}

	if !strings.HasPrefix(text, delimiter+"\n") && text != delimiter {
		doc.Body = text
		return doc, nil
	}

	rest := strings.TrimPrefix(text, delimiter)
	rest = strings.TrimPrefix(rest, "\n")

	var header string
	switch {
	case strings.HasPrefix(rest, delimiter+"\n") || rest == delimiter:
		header = ""
		rest = strings.TrimPrefix(strings.TrimPrefix(rest, delimiter), "\n")
	default:
		end := strings.Index(rest, "\n"+delimiter+"\n")
		if end < 0 {
			if strings.HasSuffix(rest, "\n"+delimiter) {
				end = len(rest) - len(delimiter) - 1
			} else {
				return Document{}, fmt.Errorf("frontmatter: missing closing %q", delimiter)
			}
		}
		header = rest[:end]
		rest = rest[end+1:]
		rest = strings.TrimPrefix(rest, delimiter)
		rest = strings.TrimPrefix(rest, "\n")
	}

	if strings.TrimSpace(header) != "" {
		if err := yaml.Unmarshal([]byte(header), &doc.Fields); err != nil {
			return Document{}, fmt.Errorf("frontmatter: decode yaml: %w", err)
		}
		if doc.Fields == nil {
			doc.Fields = map[string]any{}
		}
	}

	doc.Body = rest
	return doc, nil
}

// Render writes doc back out with its fields as a YAML header. The body always
// ends with a newline.
func Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	if len(doc.Fields) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc.Fields); err != nil {
			return nil, fmt.Errorf("frontmatter: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("frontmatter: encode yaml: %w", err)
		}
	}

	buf.WriteString(delimiter + "\n")
	buf.WriteString(doc.Body)
	if !strings.HasSuffix(doc.Body, "\n") {
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}
