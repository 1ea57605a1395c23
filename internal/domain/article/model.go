package article

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Article maps to the article table.
type Article struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	AuthorID    uuid.UUID  `db:"author_id" json:"author_id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Body        string     `db:"body" json:"body"`
	Tags        []string   `db:"tags" json:"tags"`
	Published   bool       `db:"published" json:"published"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses runs of non-alphanumerics into
// single hyphens.
func Slugify(title string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
