package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const DefaultBlogImage = "/images/blog/default-blog.png"

// BlogPost is a post's frontmatter plus, when loaded individually, its Markdown body.
type BlogPost struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ReadTime    int      `json:"readTime"`
	Featured    bool     `json:"featured"`
	Image       string   `json:"image"`
	Content     string   `json:"content,omitempty"`
}

type CreatePostRequest struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	Content       string  `json:"content" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	FeaturedImage string  `json:"featuredImage"`
	Category      string  `json:"category"`
	Tags          TagList `json:"tags"`
	ReadTime      FlexInt `json:"readTime"`
	Featured      bool    `json:"featured"`
	Date          string  `json:"date"`
}

// UpdatePostRequest only touches the fields that are present in the body.
type UpdatePostRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Content       *string  `json:"content"`
	FeaturedImage *string  `json:"featuredImage"`
	Category      *string  `json:"category"`
	Description   *string  `json:"description"`
	Tags          *TagList `json:"tags"`
	ReadTime      *FlexInt `json:"readTime"`
	Featured      *bool    `json:"featured"`
	Date          *string  `json:"date"`
}

type PostListResponse struct {
	Success bool       `json:"success"`
	Posts   []BlogPost `json:"posts"`
}

type PostResponse struct {
	Success bool     `json:"success"`
	Post    BlogPost `json:"post"`
}

type PostCreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Slug    string `json:"slug"`
}

// TagList accepts either a JSON array of strings or a comma separated string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = nil
		return nil
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*t = SplitTags(raw)
		return nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings: %w", err)
	}

	out := make([]string, 0, len(list))
	for _, tag := range list {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	*t = out
	return nil
}

func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// FlexInt accepts 5, "5" or "" (as zero).
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		*f = 0
		return nil
	}

	trimmed = strings.Trim(trimmed, `"`)
	value, err := strconv.Atoi(strings.TrimSpace(trimmed))
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", string(data))
	}

	*f = FlexInt(value)
	return nil
}
