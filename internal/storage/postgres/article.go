package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"news_portal/internal/domain"
)

const articleColumns = `id, headline, content, excerpt, category, author, image_url,
	published_at, is_published, created_at, updated_at`

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// Get returns nil without error when the article does not exist.
func (s *ArticleStore) Get(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	err := s.db.GetContext(ctx, &article, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStore) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	var (
		query string
		args  []interface{}
	)
	if filter.ByCategory() {
		// Category listings include unpublished articles; only the
		// unfiltered listing is restricted to published ones.
		query = `SELECT ` + articleColumns + ` FROM articles
			WHERE category = $1
			ORDER BY published_at DESC, id DESC
			LIMIT $2`
		args = []interface{}{filter.Category, filter.Limit}
	} else {
		query = `SELECT ` + articleColumns + ` FROM articles
			WHERE is_published = TRUE
			ORDER BY published_at DESC, id DESC
			LIMIT $1`
		args = []interface{}{filter.Limit}
	}

	articles := []domain.Article{}
	if err := s.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleStore) Create(ctx context.Context, in domain.NewArticle) (*domain.Article, error) {
	query := `
		INSERT INTO articles (
			headline, content, excerpt, category, author, image_url,
			published_at, is_published
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			COALESCE($7, NOW()), COALESCE($8, TRUE)
		)
		RETURNING ` + articleColumns

	var article domain.Article
	err := s.db.QueryRowxContext(ctx, query,
		in.Headline,
		in.Content,
		in.Excerpt,
		in.Category,
		in.Author,
		in.ImageURL,
		in.PublishedAt,
		in.IsPublished,
	).StructScan(&article)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Update returns domain.ErrNotFound when the article does not exist.
func (s *ArticleStore) Update(ctx context.Context, id int64, patch domain.ArticlePatch) (*domain.Article, error) {
	query, args := updateQuery("articles", "id", patch.Assignments(), articleColumns)
	args = append(args, id)

	var article domain.Article
	err := s.db.QueryRowxContext(ctx, query, args...).StructScan(&article)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	return err
}

// Search matches q as a case-sensitive substring of headline, content or
// excerpt, newest first.
func (s *ArticleStore) Search(ctx context.Context, q string) ([]domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles
		WHERE headline LIKE $1 ESCAPE '\'
			OR content LIKE $1 ESCAPE '\'
			OR excerpt LIKE $1 ESCAPE '\'
		ORDER BY published_at DESC, id DESC`

	articles := []domain.Article{}
	if err := s.db.SelectContext(ctx, &articles, query, containsPattern(q)); err != nil {
		return nil, err
	}
	return articles, nil
}
