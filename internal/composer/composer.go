// Package composer turns a completed batch into a publishable post.
package composer

import (
	"regexp"
	"strings"

	"github.com/orgball2608/affiliate-post-bot/internal/domain"
)

const (
	DefaultFallbackTitle = "מוצר חדש"
	DefaultMaxPhotos     = 4
)

// MaxPhotos is the hard ceiling; larger configured values are clamped.
const MaxPhotos = 4

var linkPattern = regexp.MustCompile(`https?://\S+`)

type Config struct {
	Keywords      []string
	MaxPhotos     int
	ShareLink     string
	FallbackTitle string
}

type Composer struct {
	keywords      []string // lower-cased
	maxPhotos     int
	shareLink     string
	fallbackTitle string
}

func New(cfg Config) *Composer {
	c := &Composer{
		maxPhotos:     cfg.MaxPhotos,
		shareLink:     cfg.ShareLink,
		fallbackTitle: cfg.FallbackTitle,
	}
	if c.maxPhotos <= 0 {
		c.maxPhotos = DefaultMaxPhotos
	}
	if c.maxPhotos > MaxPhotos {
		c.maxPhotos = MaxPhotos
	}
	if c.fallbackTitle == "" {
		c.fallbackTitle = DefaultFallbackTitle
	}
	for _, k := range cfg.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			c.keywords = append(c.keywords, k)
		}
	}
	return c
}

// Compose never fails; missing pieces fall back to defaults.
func (c *Composer) Compose(items []domain.Item) domain.ComposedPost {
	var texts, photos []string
	for _, it := range items {
		switch it.Kind {
		case domain.ItemText:
			if t := strings.TrimSpace(it.Text); t != "" {
				texts = append(texts, t)
			}
		case domain.ItemPhoto:
			if it.PhotoID != "" {
				photos = append(photos, it.PhotoID)
			}
		}
	}

	doc := strings.ReplaceAll(strings.Join(texts, "\n"), "\r\n", "\n")

	post := domain.ComposedPost{
		Title: c.fallbackTitle,
		Body:  c.body(doc),
		Link:  linkPattern.FindString(doc),
	}
	if len(texts) > 0 {
		first, _, _ := strings.Cut(strings.ReplaceAll(texts[0], "\r\n", "\n"), "\n")
		post.Title = strings.TrimSpace(first)
	}
	if len(photos) > c.maxPhotos {
		photos = photos[:c.maxPhotos]
	}
	post.Photos = photos
	post.Caption = Render(post, c.shareLink)

	return post
}

// body keeps each distinct trimmed line that mentions a keyword, first occurrence first.
func (c *Composer) body(doc string) []string {
	var lines []string
	seen := make(map[string]struct{})
	for _, raw := range strings.Split(doc, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || !c.matches(line) {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}
	return lines
}

func (c *Composer) matches(line string) bool {
	lower := strings.ToLower(line)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
