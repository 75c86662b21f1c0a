package domain

import "time"

// AllCategories is the category filter value that disables category filtering.
const AllCategories = "all"

type Article struct {
	ID          int64     `json:"id" db:"id"`
	Headline    string    `json:"headline" db:"headline"`
	Content     string    `json:"content" db:"content"`
	Excerpt     string    `json:"excerpt" db:"excerpt"`
	Category    string    `json:"category" db:"category"`
	Author      string    `json:"author" db:"author"`
	ImageURL    *string   `json:"imageUrl" db:"image_url"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// NewArticle is a validated create payload. Nil optional fields take the
// column defaults: PublishedAt now, IsPublished true.
type NewArticle struct {
	Headline    string
	Content     string
	Excerpt     string
	Category    string
	Author      string
	ImageURL    *string
	PublishedAt *time.Time
	IsPublished *bool
}

type ArticlePatch struct {
	Headline    Field[string]
	Content     Field[string]
	Excerpt     Field[string]
	Category    Field[string]
	Author      Field[string]
	ImageURL    Field[string]
	PublishedAt Field[time.Time]
	IsPublished Field[bool]
}

func (p ArticlePatch) Assignments() []Assignment {
	var out []Assignment
	out = appendAssignment(out, "headline", p.Headline)
	out = appendAssignment(out, "content", p.Content)
	out = appendAssignment(out, "excerpt", p.Excerpt)
	out = appendAssignment(out, "category", p.Category)
	out = appendAssignment(out, "author", p.Author)
	out = appendAssignment(out, "image_url", p.ImageURL)
	out = appendAssignment(out, "published_at", p.PublishedAt)
	out = appendAssignment(out, "is_published", p.IsPublished)
	return out
}

// ApplyTo merges the supplied fields into a. Validation guarantees that
// non-nullable fields are never supplied as null.
func (p ArticlePatch) ApplyTo(a *Article) {
	p.Headline.assignTo(&a.Headline)
	p.Content.assignTo(&a.Content)
	p.Excerpt.assignTo(&a.Excerpt)
	p.Category.assignTo(&a.Category)
	p.Author.assignTo(&a.Author)
	p.ImageURL.assignPtr(&a.ImageURL)
	p.PublishedAt.assignTo(&a.PublishedAt)
	p.IsPublished.assignTo(&a.IsPublished)
}

// ArticleFilter selects articles for listing.
type ArticleFilter struct {
	Category string
	Limit    int
}

// ByCategory reports whether the filter narrows to a single category.
func (f ArticleFilter) ByCategory() bool {
	return f.Category != "" && f.Category != AllCategories
}
