package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"edu-backoffice/internal/frontmatter"
	"edu-backoffice/internal/model"
	"edu-backoffice/internal/util"
	"edu-backoffice/pkg/apierror"
)

// isoMillis matches the timestamps the public site writes into post dates.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// PostStore is the slug-addressed file store behind the blog service.
type PostStore interface {
	Exists(slug string) (bool, error)
	Read(slug string) ([]byte, error)
	Write(slug string, data []byte) error
	Remove(slug string) error
	List() ([]string, error)
}

type BlogService struct {
	store PostStore
	now   func() time.Time
}

func NewBlogService(store PostStore) *BlogService {
	return &BlogService{store: store, now: time.Now}
}

// List returns every post's metadata, newest first. Files that cannot be
// parsed are skipped.
func (s *BlogService) List(ctx context.Context) ([]model.BlogPost, error) {
	slugs, err := s.store.List()
	if err != nil {
		return nil, err
	}

	posts := make([]model.BlogPost, 0, len(slugs))
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		post, err := s.load(slug, false)
		if err != nil {
			slog.Warn("skipping unreadable blog post", "slug", slug, "error", err)
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return postTime(posts[i].Date).After(postTime(posts[j].Date))
	})

	return posts, nil
}

func (s *BlogService) Count(ctx context.Context) (int64, error) {
	posts, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(posts)), nil
}

func (s *BlogService) Get(_ context.Context, slug string) (model.BlogPost, error) {
	return s.load(slug, true)
}

// Create writes a new post under the slug derived from its title. A post that
// already has that slug is replaced.
func (s *BlogService) Create(_ context.Context, req model.CreatePostRequest) (string, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Author) == "" ||
		strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.Description) == "" {
		return "", apierror.BadRequest("Missing required fields", "title, author, content and description are required")
	}

	slug := util.Slugify(req.Title)
	if slug == "" {
		return "", apierror.BadRequest("Title must contain at least one letter or digit", req.Title)
	}

	exists, err := s.store.Exists(slug)
	if err != nil {
		return "", err
	}
	if exists {
		slog.Warn("blog post slug already exists; overwriting", "slug", slug)
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.now().UTC().Format(isoMillis)
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "General"
	}

	image := strings.TrimSpace(req.FeaturedImage)
	if image == "" {
		image = model.DefaultBlogImage
	}

	tags := []string(req.Tags)
	if tags == nil {
		tags = []string{}
	}

	doc := frontmatter.Document{
		Fields: map[string]any{
			"title":       req.Title,
			"author":      req.Author,
			"date":        date,
			"category":    category,
			"description": req.Description,
			"tags":        tags,
			"readTime":    int(req.ReadTime),
			"featured":    req.Featured,
			"image":       image,
		},
		Body: req.Content,
	}

	if err := s.save(slug, doc); err != nil {
		return "", err
	}

	slog.Info("blog post created", "slug", slug)
	return slug, nil
}

// Update changes only the fields present in req. Frontmatter keys this
// service does not know about are kept as they are.
func (s *BlogService) Update(_ context.Context, slug string, req model.UpdatePostRequest) error {
	if err := s.mustExist(slug); err != nil {
		return err
	}

	raw, err := s.store.Read(slug)
	if err != nil {
		return err
	}

	doc, err := frontmatter.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse post %q: %w", slug, err)
	}

	setString(doc.Fields, "title", req.Title)
	setString(doc.Fields, "author", req.Author)
	setString(doc.Fields, "image", req.FeaturedImage)
	setString(doc.Fields, "category", req.Category)
	setString(doc.Fields, "description", req.Description)
	setString(doc.Fields, "date", req.Date)
	if req.Tags != nil {
		tags := []string(*req.Tags)
		if tags == nil {
			tags = []string{}
		}
		doc.Fields["tags"] = tags
	}
	if req.ReadTime != nil {
		doc.Fields["readTime"] = int(*req.ReadTime)
	}
	if req.Featured != nil {
		doc.Fields["featured"] = *req.Featured
	}
	if value, ok := doc.Fields["date"].(time.Time); ok {
		doc.Fields["date"] = value.UTC().Format(isoMillis)
	}
	if req.Content != nil {
		doc.Body = *req.Content
	}

	if err := s.save(slug, doc); err != nil {
		return err
	}

	slog.Info("blog post updated", "slug", slug)
	return nil
}

func (s *BlogService) Delete(_ context.Context, slug string) error {
	if err := s.mustExist(slug); err != nil {
		return err
	}

	if err := s.store.Remove(slug); err != nil {
		return err
	}

	slog.Info("blog post deleted", "slug", slug)
	return nil
}

func (s *BlogService) mustExist(slug string) error {
	exists, err := s.store.Exists(slug)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrPostNotFound
	}
	return nil
}

func (s *BlogService) save(slug string, doc frontmatter.Document) error {
	rendered, err := frontmatter.Render(doc)
	if err != nil {
		return fmt.Errorf("render post %q: %w", slug, err)
	}
	return s.store.Write(slug, rendered)
}

func (s *BlogService) load(slug string, withContent bool) (model.BlogPost, error) {
	raw, err := s.store.Read(slug)
	if err != nil {
		return model.BlogPost{}, err
	}

	doc, err := frontmatter.Parse(raw)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("parse post %q: %w", slug, err)
	}

	post := model.BlogPost{
		Slug:        slug,
		Title:       stringField(doc.Fields, "title"),
		Author:      stringField(doc.Fields, "author"),
		Date:        stringField(doc.Fields, "date"),
		Category:    stringField(doc.Fields, "category"),
		Description: stringField(doc.Fields, "description"),
		Tags:        tagsField(doc.Fields, "tags"),
		ReadTime:    intField(doc.Fields, "readTime"),
		Featured:    boolField(doc.Fields, "featured"),
		Image:       stringField(doc.Fields, "image"),
	}
	if withContent {
		post.Content = doc.Body
	}

	return post, nil
}

func setString(fields map[string]any, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}

func stringField(fields map[string]any, key string) string {
	switch value := fields[key].(type) {
	case nil:
		return ""
	case string:
		return value
	case time.Time:
		return value.UTC().Format(isoMillis)
	default:
		return fmt.Sprint(value)
	}
}

func intField(fields map[string]any, key string) int {
	switch value := fields[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case uint64:
		if value > math.MaxInt32 {
			return math.MaxInt32
		}
		return int(value)
	case float64:
		return int(value)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func boolField(fields map[string]any, key string) bool {
	switch value := fields[key].(type) {
	case bool:
		return value
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		return err == nil && parsed
	default:
		return false
	}
}

func tagsField(fields map[string]any, key string) []string {
	switch value := fields[key].(type) {
	case []any:
		tags := make([]string, 0, len(value))
		for _, item := range value {
			if tag := strings.TrimSpace(fmt.Sprint(item)); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	case string:
		return model.SplitTags(value)
	default:
		return []string{}
	}
}

var postDateLayouts = []string{time.RFC3339Nano, isoMillis, "2006-01-02T15:04:05", "2006-01-02", "January 2, 2006"}

// postTime parses a post date for ordering. Unparseable dates sort last.
func postTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range postDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
