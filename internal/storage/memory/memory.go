// Package memory is a process-local Entity Store used for development runs
// and tests. It mirrors the ordering, filtering and default rules of the
// Postgres store.
package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"news_portal/internal/domain"
)

// errEmailTaken mirrors the unique constraint on users.email.
var errEmailTaken = errors.New("email already belongs to another user")

// DB holds every entity table behind a single lock.
type DB struct {
	mu  sync.RWMutex
	now func() time.Time

	articles    map[int64]domain.Article
	nextArticle int64
	videos      map[int64]domain.Video
	nextVideo   int64
	epapers     map[int64]domain.Epaper
	nextEpaper  int64
	users       map[string]domain.User
}

func New() *DB {
	return NewWithClock(func() time.Time { return time.Now().UTC() })
}

// NewWithClock uses now for every generated timestamp.
func NewWithClock(now func() time.Time) *DB {
	return &DB{
		now:      now,
		articles: make(map[int64]domain.Article),
		videos:   make(map[int64]domain.Video),
		epapers:  make(map[int64]domain.Epaper),
		users:    make(map[string]domain.User),
	}
}

func (db *DB) PingContext(ctx context.Context) error {
	return ctx.Err()
}

func (db *DB) Articles() *ArticleStore { return &ArticleStore{db: db} }
func (db *DB) Videos() *VideoStore     { return &VideoStore{db: db} }
func (db *DB) Epapers() *EpaperStore   { return &EpaperStore{db: db} }
func (db *DB) Users() *UserStore       { return &UserStore{db: db} }

type ArticleStore struct {
	db *DB
}

func (s *ArticleStore) Get(ctx context.Context, id int64) (*domain.Article, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	article, ok := s.db.articles[id]
	if !ok {
		return nil, nil
	}
	return cloneArticle(article), nil
}

func (s *ArticleStore) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []domain.Article{}
	for _, a := range s.db.articles {
		if filter.ByCategory() {
			// Category listings include unpublished articles.
			if a.Category != filter.Category {
				continue
			}
		} else if !a.IsPublished {
			continue
		}
		out = append(out, *cloneArticle(a))
	}
	sortNewestFirst(out, func(a domain.Article) (time.Time, int64) { return a.PublishedAt, a.ID })
	return truncate(out, filter.Limit), nil
}

func (s *ArticleStore) Create(ctx context.Context, in domain.NewArticle) (*domain.Article, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.now()
	s.db.nextArticle++
	article := domain.Article{
		ID:          s.db.nextArticle,
		Headline:    in.Headline,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		Category:    in.Category,
		Author:      in.Author,
		ImageURL:    clonePtr(in.ImageURL),
		PublishedAt: valueOr(in.PublishedAt, now),
		IsPublished: valueOr(in.IsPublished, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.db.articles[article.ID] = article
	return cloneArticle(article), nil
}

func (s *ArticleStore) Update(ctx context.Context, id int64, patch domain.ArticlePatch) (*domain.Article, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	article, ok := s.db.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.ApplyTo(&article)
	article.UpdatedAt = s.db.now()
	s.db.articles[id] = article
	return cloneArticle(article), nil
}

func (s *ArticleStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.articles, id)
	return nil
}

func (s *ArticleStore) Search(ctx context.Context, q string) ([]domain.Article, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []domain.Article{}
	for _, a := range s.db.articles {
		if strings.Contains(a.Headline, q) || strings.Contains(a.Content, q) || strings.Contains(a.Excerpt, q) {
			out = append(out, *cloneArticle(a))
		}
	}
	sortNewestFirst(out, func(a domain.Article) (time.Time, int64) { return a.PublishedAt, a.ID })
	return out, nil
}

type VideoStore struct {
	db *DB
}

func (s *VideoStore) Get(ctx context.Context, id int64) (*domain.Video, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	video, ok := s.db.videos[id]
	if !ok {
		return nil, nil
	}
	return cloneVideo(video), nil
}

func (s *VideoStore) List(ctx context.Context, limit int) ([]domain.Video, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]domain.Video, 0, len(s.db.videos))
	for _, v := range s.db.videos {
		out = append(out, *cloneVideo(v))
	}
	sortNewestFirst(out, func(v domain.Video) (time.Time, int64) { return v.PublishedAt, v.ID })
	return truncate(out, limit), nil
}

func (s *VideoStore) Create(ctx context.Context, in domain.NewVideo) (*domain.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.now()
	s.db.nextVideo++
	video := domain.Video{
		ID:           s.db.nextVideo,
		Title:        in.Title,
		Description:  clonePtr(in.Description),
		Platform:     in.Platform,
		VideoURL:     in.VideoURL,
		ThumbnailURL: clonePtr(in.ThumbnailURL),
		Duration:     clonePtr(in.Duration),
		Views:        valueOr(in.Views, 0),
		PublishedAt:  valueOr(in.PublishedAt, now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.db.videos[video.ID] = video
	return cloneVideo(video), nil
}

func (s *VideoStore) Update(ctx context.Context, id int64, patch domain.VideoPatch) (*domain.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	video, ok := s.db.videos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.ApplyTo(&video)
	video.UpdatedAt = s.db.now()
	s.db.videos[id] = video
	return cloneVideo(video), nil
}

func (s *VideoStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.videos, id)
	return nil
}

type EpaperStore struct {
	db *DB
}

func (s *EpaperStore) Get(ctx context.Context, id int64) (*domain.Epaper, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	epaper, ok := s.db.epapers[id]
	if !ok {
		return nil, nil
	}
	return cloneEpaper(epaper), nil
}

func (s *EpaperStore) List(ctx context.Context, limit int) ([]domain.Epaper, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]domain.Epaper, 0, len(s.db.epapers))
	for _, e := range s.db.epapers {
		out = append(out, *cloneEpaper(e))
	}
	sortNewestFirst(out, func(e domain.Epaper) (time.Time, int64) { return e.PublishDate, e.ID })
	return truncate(out, limit), nil
}

func (s *EpaperStore) Create(ctx context.Context, in domain.NewEpaper) (*domain.Epaper, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.now()
	s.db.nextEpaper++
	epaper := domain.Epaper{
		ID:            s.db.nextEpaper,
		Title:         in.Title,
		Description:   clonePtr(in.Description),
		PDFURL:        in.PDFURL,
		ThumbnailURL:  clonePtr(in.ThumbnailURL),
		Edition:       clonePtr(in.Edition),
		Language:      clonePtr(in.LanguageOrDefault()),
		PublishDate:   valueOr(in.PublishDate, now),
		FileSize:      clonePtr(in.FileSize),
		Pages:         clonePtr(in.Pages),
		DownloadCount: valueOr(in.DownloadCount, 0),
		IsPublished:   valueOr(in.IsPublished, true),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.db.epapers[epaper.ID] = epaper
	return cloneEpaper(epaper), nil
}

func (s *EpaperStore) Update(ctx context.Context, id int64, patch domain.EpaperPatch) (*domain.Epaper, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	epaper, ok := s.db.epapers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.ApplyTo(&epaper)
	epaper.UpdatedAt = s.db.now()
	s.db.epapers[id] = epaper
	return cloneEpaper(epaper), nil
}

func (s *EpaperStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.epapers, id)
	return nil
}

type UserStore struct {
	db *DB
}

func (s *UserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	user, ok := s.db.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (s *UserStore) Upsert(ctx context.Context, in domain.UserUpsert) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if in.Email.Set && !in.Email.IsNull() {
		for id, other := range s.db.users {
			if id != in.ID && other.Email != nil && *other.Email == *in.Email.Value {
				return nil, errEmailTaken
			}
		}
	}

	now := s.db.now()
	user, ok := s.db.users[in.ID]
	if !ok {
		user = domain.User{ID: in.ID, CreatedAt: now}
	}
	in.ApplyTo(&user)
	user.UpdatedAt = now
	s.db.users[in.ID] = user
	return cloneUser(user), nil
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]domain.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		out = append(out, *cloneUser(u))
	}
	slices.SortFunc(out, func(a, b domain.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *UserStore) SetAdmin(ctx context.Context, id string, isAdmin bool) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user, ok := s.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user.IsAdmin = isAdmin
	user.UpdatedAt = s.db.now()
	s.db.users[id] = user
	return cloneUser(user), nil
}

func sortNewestFirst[T any](items []T, key func(T) (time.Time, int64)) {
	slices.SortFunc(items, func(a, b T) int {
		at, aid := key(a)
		bt, bid := key(b)
		if c := bt.Compare(at); c != 0 {
			return c
		}
		return cmp.Compare(bid, aid)
	})
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Stored records never share pointer fields with what callers receive.

func cloneArticle(a domain.Article) *domain.Article {
	a.ImageURL = clonePtr(a.ImageURL)
	return &a
}

func cloneVideo(v domain.Video) *domain.Video {
	v.Description = clonePtr(v.Description)
	v.ThumbnailURL = clonePtr(v.ThumbnailURL)
	v.Duration = clonePtr(v.Duration)
	return &v
}

func cloneEpaper(e domain.Epaper) *domain.Epaper {
	e.Description = clonePtr(e.Description)
	e.ThumbnailURL = clonePtr(e.ThumbnailURL)
	e.Edition = clonePtr(e.Edition)
	e.Language = clonePtr(e.Language)
	e.FileSize = clonePtr(e.FileSize)
	e.Pages = clonePtr(e.Pages)
	return &e
}

func cloneUser(u domain.User) *domain.User {
	u.Email = clonePtr(u.Email)
	u.FirstName = clonePtr(u.FirstName)
	u.LastName = clonePtr(u.LastName)
	u.ProfileImageURL = clonePtr(u.ProfileImageURL)
	return &u
}
