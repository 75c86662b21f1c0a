//go:build integration

package postgres

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"news_portal/internal/domain"
	"news_portal/internal/storage/migrate"
)

func ptr[T any](v T) *T {
	return &v
}

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB

	articles *ArticleStore
	videos   *VideoStore
	epapers  *EpaperStore
	users    *UserStore
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := Connect(s.ctx, connStr, PoolConfig{MaxOpenConns: 5})
	s.Require().NoError(err)
	s.db = db

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(migrate.Up(db.DB, migrationsPath, logger))
	// A second run finds nothing to apply.
	s.Require().NoError(migrate.Up(db.DB, migrationsPath, logger))

	s.articles = NewArticleStore(db)
	s.videos = NewVideoStore(db)
	s.epapers = NewEpaperStore(db)
	s.users = NewUserStore(db)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM articles")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM videos")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM epapers")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM users")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) newArticle(headline, category string, publishedAt time.Time, published bool) *domain.Article {
	article, err := s.articles.Create(s.ctx, domain.NewArticle{
		Headline:    headline,
		Content:     headline + " body",
		Excerpt:     headline + " excerpt",
		Category:    category,
		Author:      "Desk",
		PublishedAt: &publishedAt,
		IsPublished: &published,
	})
	s.Require().NoError(err)
	return article
}

func (s *PostgresIntegrationSuite) TestArticleStore_CreateAppliesDefaults() {
	created, err := s.articles.Create(s.ctx, domain.NewArticle{
		Headline: "A", Content: "B", Excerpt: "C", Category: "sports", Author: "X",
	})
	s.Require().NoError(err)

	s.NotZero(created.ID)
	s.True(created.IsPublished)
	s.False(created.PublishedAt.IsZero())
	s.Nil(created.ImageURL)
	s.False(created.CreatedAt.IsZero())

	fetched, err := s.articles.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(fetched)
	s.Equal(created.Headline, fetched.Headline)
	s.True(created.PublishedAt.Equal(fetched.PublishedAt))
}

func (s *PostgresIntegrationSuite) TestArticleStore_GetAbsent() {
	article, err := s.articles.Get(s.ctx, 424242)
	s.NoError(err)
	s.Nil(article)
}

func (s *PostgresIntegrationSuite) TestArticleStore_ListPublishedAsymmetry() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.newArticle("old", "sports", base, true)
	s.newArticle("draft", "sports", base.Add(time.Hour), false)
	s.newArticle("news", "politics", base.Add(2*time.Hour), true)

	all, err := s.articles.List(s.ctx, domain.ArticleFilter{Category: domain.AllCategories, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("news", all[0].Headline)
	s.Equal("old", all[1].Headline)

	sports, err := s.articles.List(s.ctx, domain.ArticleFilter{Category: "sports", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(sports, 2)
	s.Equal("draft", sports[0].Headline)
	s.False(sports[0].IsPublished)

	limited, err := s.articles.List(s.ctx, domain.ArticleFilter{Limit: 1})
	s.Require().NoError(err)
	s.Len(limited, 1)
}

func (s *PostgresIntegrationSuite) TestArticleStore_UpdateMergesSuppliedFields() {
	created := s.newArticle("before", "sports", time.Now().UTC(), true)
	created, err := s.articles.Update(s.ctx, created.ID, domain.ArticlePatch{ImageURL: domain.Some("https://img/a.jpg")})
	s.Require().NoError(err)

	updated, err := s.articles.Update(s.ctx, created.ID, domain.ArticlePatch{
		Headline: domain.Some("after"),
		ImageURL: domain.Null[string](),
	})
	s.Require().NoError(err)

	s.Equal("after", updated.Headline)
	s.Equal(created.Content, updated.Content)
	s.Nil(updated.ImageURL)
	s.True(updated.UpdatedAt.After(created.UpdatedAt))
	s.True(updated.CreatedAt.Equal(created.CreatedAt))

	touched, err := s.articles.Update(s.ctx, created.ID, domain.ArticlePatch{})
	s.Require().NoError(err)
	s.Equal("after", touched.Headline)
	s.True(touched.UpdatedAt.After(updated.UpdatedAt))
}

func (s *PostgresIntegrationSuite) TestArticleStore_UpdateAbsent() {
	_, err := s.articles.Update(s.ctx, 424242, domain.ArticlePatch{Headline: domain.Some("x")})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestArticleStore_DeleteIsIdempotent() {
	created := s.newArticle("gone", "news", time.Now().UTC(), true)

	s.NoError(s.articles.Delete(s.ctx, created.ID))
	s.NoError(s.articles.Delete(s.ctx, created.ID))

	article, err := s.articles.Get(s.ctx, created.ID)
	s.NoError(err)
	s.Nil(article)
}

func (s *PostgresIntegrationSuite) TestArticleStore_SearchIsLiteralAndCaseSensitive() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.newArticle("Budget vote", "politics", base, true)
	s.newArticle("100% turnout", "politics", base.Add(time.Hour), false)
	s.newArticle("1000 turnout", "politics", base.Add(2*time.Hour), true)

	found, err := s.articles.Search(s.ctx, "turnout")
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal("1000 turnout", found[0].Headline)

	found, err = s.articles.Search(s.ctx, "100%")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("100% turnout", found[0].Headline)

	found, err = s.articles.Search(s.ctx, "budget")
	s.Require().NoError(err)
	s.Empty(found)

	found, err = s.articles.Search(s.ctx, "vote excerpt")
	s.Require().NoError(err)
	s.Len(found, 1)
}

func (s *PostgresIntegrationSuite) TestVideoStore() {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	first, err := s.videos.Create(s.ctx, domain.NewVideo{
		Title: "First", Platform: "youtube", VideoURL: "https://youtu.be/1", PublishedAt: &base,
	})
	s.Require().NoError(err)
	s.Equal(0, first.Views)
	s.Nil(first.Description)

	later := base.Add(time.Hour)
	_, err = s.videos.Create(s.ctx, domain.NewVideo{
		Title: "Second", Platform: "instagram", VideoURL: "https://instagram.com/2",
		Views: ptr(12), PublishedAt: &later,
	})
	s.Require().NoError(err)

	videos, err := s.videos.List(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(videos, 1)
	s.Equal("Second", videos[0].Title)
	s.Equal(12, videos[0].Views)

	updated, err := s.videos.Update(s.ctx, first.ID, domain.VideoPatch{Views: domain.Some(99)})
	s.Require().NoError(err)
	s.Equal(99, updated.Views)
	s.Equal("First", updated.Title)

	_, err = s.videos.Update(s.ctx, 424242, domain.VideoPatch{})
	s.ErrorIs(err, domain.ErrNotFound)

	s.NoError(s.videos.Delete(s.ctx, first.ID))
	gone, err := s.videos.Get(s.ctx, first.ID)
	s.NoError(err)
	s.Nil(gone)
}

func (s *PostgresIntegrationSuite) TestEpaperStore() {
	defaulted, err := s.epapers.Create(s.ctx, domain.NewEpaper{Title: "Morning", PDFURL: "https://cdn/m.pdf"})
	s.Require().NoError(err)
	s.Require().NotNil(defaulted.Language)
	s.Equal(domain.DefaultEpaperLanguage, *defaulted.Language)
	s.Nil(defaulted.Pages)
	s.Equal(0, defaulted.DownloadCount)
	s.True(defaulted.IsPublished)
	s.False(defaulted.PublishDate.IsZero())

	explicitNull, err := s.epapers.Create(s.ctx, domain.NewEpaper{
		Title: "Evening", PDFURL: "https://cdn/e.pdf",
		Language: domain.Null[string](), Pages: ptr(24),
	})
	s.Require().NoError(err)
	s.Nil(explicitNull.Language)
	s.Equal(24, *explicitNull.Pages)

	updated, err := s.epapers.Update(s.ctx, explicitNull.ID, domain.EpaperPatch{
		Language:      domain.Some("hindi"),
		DownloadCount: domain.Some(3),
	})
	s.Require().NoError(err)
	s.Equal("hindi", *updated.Language)
	s.Equal(3, updated.DownloadCount)

	epapers, err := s.epapers.List(s.ctx, 20)
	s.Require().NoError(err)
	s.Len(epapers, 2)
}

func (s *PostgresIntegrationSuite) TestUserStore_UpsertOverwritesSuppliedFields() {
	created, err := s.users.Upsert(s.ctx, domain.UserUpsert{
		ID:        "u1",
		Email:     domain.Some("u1@example.com"),
		FirstName: domain.Some("Ada"),
	})
	s.Require().NoError(err)
	s.False(created.IsAdmin)
	s.False(created.IsSuperAdmin)

	updated, err := s.users.Upsert(s.ctx, domain.UserUpsert{
		ID:       "u1",
		LastName: domain.Some("Lovelace"),
		IsAdmin:  domain.Some(true),
	})
	s.Require().NoError(err)
	s.Equal("Ada", *updated.FirstName)
	s.Equal("Lovelace", *updated.LastName)
	s.Equal("u1@example.com", *updated.Email)
	s.True(updated.IsAdmin)
	s.True(updated.CreatedAt.Equal(created.CreatedAt))
	s.True(updated.UpdatedAt.After(created.UpdatedAt))

	bare, err := s.users.Upsert(s.ctx, domain.UserUpsert{ID: "u2"})
	s.Require().NoError(err)
	s.Nil(bare.Email)
}

func (s *PostgresIntegrationSuite) TestUserStore_ListAndSetAdmin() {
	for _, id := range []string{"first", "second"} {
		_, err := s.users.Upsert(s.ctx, domain.UserUpsert{ID: id})
		s.Require().NoError(err)
	}

	users, err := s.users.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("first", users[0].ID)
	s.Equal("second", users[1].ID)

	promoted, err := s.users.SetAdmin(s.ctx, "second", true)
	s.Require().NoError(err)
	s.True(promoted.IsAdmin)
	s.False(promoted.IsSuperAdmin)

	_, err = s.users.SetAdmin(s.ctx, "missing", true)
	s.ErrorIs(err, domain.ErrNotFound)

	user, err := s.users.Get(s.ctx, "missing")
	s.NoError(err)
	s.Nil(user)
}
