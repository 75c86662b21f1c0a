package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"news_portal/internal/domain"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock time.Time
	db    *DB
}

func (s *MemoryStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s.db = NewWithClock(func() time.Time { return s.clock })
}

func (s *MemoryStoreTestSuite) advance() {
	s.clock = s.clock.Add(time.Second)
}

func TestMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}

func (s *MemoryStoreTestSuite) article(headline, category string, published bool) *domain.Article {
	s.advance()
	a, err := s.db.Articles().Create(s.ctx, domain.NewArticle{
		Headline:    headline,
		Content:     headline + " body",
		Excerpt:     "summary",
		Category:    category,
		Author:      "Desk",
		IsPublished: &published,
	})
	s.Require().NoError(err)
	return a
}

func (s *MemoryStoreTestSuite) TestArticles_CreateThenGet() {
	created := s.article("A", "sports", true)

	s.Equal(int64(1), created.ID)
	s.Equal(s.clock, created.PublishedAt)
	s.Equal(s.clock, created.CreatedAt)

	fetched, err := s.db.Articles().Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, fetched)

	absent, err := s.db.Articles().Get(s.ctx, 99)
	s.NoError(err)
	s.Nil(absent)
}

func (s *MemoryStoreTestSuite) TestArticles_ListOrderingAndFilters() {
	s.article("first", "sports", true)
	s.article("hidden", "sports", false)
	s.article("third", "news", true)

	all, err := s.db.Articles().List(s.ctx, domain.ArticleFilter{Limit: 50})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("third", all[0].Headline)
	s.Equal("first", all[1].Headline)

	sports, err := s.db.Articles().List(s.ctx, domain.ArticleFilter{Category: "sports", Limit: 50})
	s.Require().NoError(err)
	s.Require().Len(sports, 2)
	s.Equal("hidden", sports[0].Headline)

	one, err := s.db.Articles().List(s.ctx, domain.ArticleFilter{Category: "all", Limit: 1})
	s.Require().NoError(err)
	s.Len(one, 1)
}

func (s *MemoryStoreTestSuite) TestArticles_SameTimestampFallsBackToID() {
	publishedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, h := range []string{"a", "b"} {
		_, err := s.db.Articles().Create(s.ctx, domain.NewArticle{Headline: h, Category: "x", PublishedAt: &publishedAt})
		s.Require().NoError(err)
	}

	listed, err := s.db.Articles().List(s.ctx, domain.ArticleFilter{Category: "x", Limit: 10})
	s.Require().NoError(err)
	s.Equal("b", listed[0].Headline)
	s.Equal("a", listed[1].Headline)
}

func (s *MemoryStoreTestSuite) TestArticles_UpdateAndDelete() {
	created := s.article("A", "sports", true)
	s.advance()

	updated, err := s.db.Articles().Update(s.ctx, created.ID, domain.ArticlePatch{Excerpt: domain.Some("new")})
	s.Require().NoError(err)
	s.Equal("new", updated.Excerpt)
	s.Equal("A", updated.Headline)
	s.Equal(s.clock, updated.UpdatedAt)
	s.Equal(created.CreatedAt, updated.CreatedAt)

	_, err = s.db.Articles().Update(s.ctx, 99, domain.ArticlePatch{})
	s.ErrorIs(err, domain.ErrNotFound)

	s.NoError(s.db.Articles().Delete(s.ctx, created.ID))
	s.NoError(s.db.Articles().Delete(s.ctx, created.ID))
	gone, err := s.db.Articles().Get(s.ctx, created.ID)
	s.NoError(err)
	s.Nil(gone)
}

func (s *MemoryStoreTestSuite) TestArticles_Search() {
	s.article("Budget vote", "politics", true)
	s.article("Derby", "sports", false)

	found, err := s.db.Articles().Search(s.ctx, "Derby body")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.False(found[0].IsPublished)

	found, err = s.db.Articles().Search(s.ctx, "summary")
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal("Derby", found[0].Headline)

	found, err = s.db.Articles().Search(s.ctx, "budget")
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *MemoryStoreTestSuite) TestReturnedRecordsAreCopies() {
	desc := "original"
	created, err := s.db.Videos().Create(s.ctx, domain.NewVideo{Title: "Clip", Description: &desc})
	s.Require().NoError(err)

	desc = "changed by caller"
	created.Title = "changed by caller"

	stored, err := s.db.Videos().Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Clip", stored.Title)
	s.Equal("original", *stored.Description)

	*stored.Description = "changed through a read"
	listed, err := s.db.Videos().List(s.ctx, 10)
	s.Require().NoError(err)
	*listed[0].Description = "changed through a listing"

	again, err := s.db.Videos().Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("original", *again.Description)

	user, err := s.db.Users().Upsert(s.ctx, domain.UserUpsert{ID: "u", Email: domain.Some("u@example.com")})
	s.Require().NoError(err)
	*user.Email = "other@example.com"
	fetched, err := s.db.Users().Get(s.ctx, "u")
	s.Require().NoError(err)
	s.Equal("u@example.com", *fetched.Email)
}

func (s *MemoryStoreTestSuite) TestVideosAndEpapers_Defaults() {
	video, err := s.db.Videos().Create(s.ctx, domain.NewVideo{Title: "Clip", Platform: "youtube", VideoURL: "u"})
	s.Require().NoError(err)
	s.Equal(0, video.Views)
	s.Equal(s.clock, video.PublishedAt)

	epaper, err := s.db.Epapers().Create(s.ctx, domain.NewEpaper{Title: "Morning", PDFURL: "p"})
	s.Require().NoError(err)
	s.Equal(domain.DefaultEpaperLanguage, *epaper.Language)
	s.True(epaper.IsPublished)
	s.Equal(0, epaper.DownloadCount)
	s.Equal(s.clock, epaper.PublishDate)

	epapers, err := s.db.Epapers().List(s.ctx, 20)
	s.Require().NoError(err)
	s.Len(epapers, 1)
}

func (s *MemoryStoreTestSuite) TestUsers() {
	users := s.db.Users()

	_, err := users.Upsert(s.ctx, domain.UserUpsert{ID: "b", FirstName: domain.Some("Bo")})
	s.Require().NoError(err)
	s.advance()
	_, err = users.Upsert(s.ctx, domain.UserUpsert{ID: "a"})
	s.Require().NoError(err)
	s.advance()

	again, err := users.Upsert(s.ctx, domain.UserUpsert{ID: "b", LastName: domain.Some("Li")})
	s.Require().NoError(err)
	s.Equal("Bo", *again.FirstName)
	s.Equal("Li", *again.LastName)
	s.Equal(s.clock, again.UpdatedAt)

	listed, err := users.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal("b", listed[0].ID, "ordered by creation time")

	promoted, err := users.SetAdmin(s.ctx, "a", true)
	s.Require().NoError(err)
	s.True(promoted.IsAdmin)

	_, err = users.SetAdmin(s.ctx, "zzz", true)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *MemoryStoreTestSuite) TestUsers_EmailIsUnique() {
	users := s.db.Users()

	_, err := users.Upsert(s.ctx, domain.UserUpsert{ID: "a", Email: domain.Some("x@y")})
	s.Require().NoError(err)

	_, err = users.Upsert(s.ctx, domain.UserUpsert{ID: "b", Email: domain.Some("x@y")})
	s.ErrorIs(err, errEmailTaken)
	absent, err := users.Get(s.ctx, "b")
	s.NoError(err)
	s.Nil(absent)

	_, err = users.Upsert(s.ctx, domain.UserUpsert{ID: "a", Email: domain.Some("x@y"), FirstName: domain.Some("Al")})
	s.NoError(err, "same user keeps its own email")

	_, err = users.Upsert(s.ctx, domain.UserUpsert{ID: "c", Email: domain.Null[string]()})
	s.NoError(err)
	_, err = users.Upsert(s.ctx, domain.UserUpsert{ID: "d", Email: domain.Null[string]()})
	s.NoError(err, "null emails never collide")
}

func (s *MemoryStoreTestSuite) TestConcurrentWrites() {
	db := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := db.Videos().Create(s.ctx, domain.NewVideo{Title: "v"})
			s.NoError(err)
		}()
	}
	wg.Wait()

	videos, err := db.Videos().List(s.ctx, 100)
	s.Require().NoError(err)
	s.Len(videos, 20)
}

func (s *MemoryStoreTestSuite) TestPing() {
	s.NoError(s.db.PingContext(s.ctx))

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.Error(s.db.PingContext(ctx))
}
