package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"news_portal/internal/config"
	"news_portal/internal/domain"
	"news_portal/internal/metrics"
)

// ContentService runs article, video and e-paper operations against the
// stores and announces committed changes. A nil publisher disables events.
type ContentService struct {
	articles  ArticleStore
	videos    VideoStore
	epapers   EpaperStore
	publisher Publisher
	logger    *slog.Logger
	listing   config.ListingConfig
	now       func() time.Time
}

func NewContentService(
	articles ArticleStore,
	videos VideoStore,
	epapers EpaperStore,
	publisher Publisher,
	logger *slog.Logger,
	listing config.ListingConfig,
) *ContentService {
	return &ContentService{
		articles:  articles,
		videos:    videos,
		epapers:   epapers,
		publisher: publisher,
		logger:    logger.With("component", "content"),
		listing:   listing,
		now:       time.Now,
	}
}

// resolveLimit applies the default for a missing or non-positive limit and
// caps explicit ones.
func (s *ContentService) resolveLimit(requested, def int) int {
	if requested <= 0 {
		return def
	}
	if s.listing.MaxLimit > 0 && requested > s.listing.MaxLimit {
		return s.listing.MaxLimit
	}
	return requested
}

// notify publishes a change event. The mutation is already committed, so a
// failed publish is logged and counted but never returned.
func (s *ContentService) notify(ctx context.Context, action domain.ContentAction, kind domain.ContentKind, id int64, record any) {
	if s.publisher == nil {
		return
	}

	event := domain.ContentEvent{
		Action:    action,
		Kind:      kind,
		ID:        id,
		Record:    record,
		Timestamp: s.now().UTC(),
	}
	err := s.publisher.Publish(ctx, event)
	metrics.ObserveContentEvent(string(kind), string(action), err)
	if err != nil {
		s.logger.Warn("failed to publish content event",
			"kind", kind,
			"action", action,
			"id", id,
			"error", err,
		)
	}
}

func (s *ContentService) ListArticles(ctx context.Context, category string, limit int) ([]domain.Article, error) {
	filter := domain.ArticleFilter{
		Category: category,
		Limit:    s.resolveLimit(limit, s.listing.ArticleLimit),
	}
	articles, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (s *ContentService) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	return article, nil
}

func (s *ContentService) SearchArticles(ctx context.Context, q string) ([]domain.Article, error) {
	articles, err := s.articles.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return articles, nil
}

func (s *ContentService) CreateArticle(ctx context.Context, in domain.NewArticle) (*domain.Article, error) {
	article, err := s.articles.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	s.logger.Info("article created", "id", article.ID, "category", article.Category)
	s.notify(ctx, domain.ActionCreate, domain.KindArticle, article.ID, article)
	return article, nil
}

func (s *ContentService) UpdateArticle(ctx context.Context, id int64, patch domain.ArticlePatch) (*domain.Article, error) {
	article, err := s.articles.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update article %d: %w", id, err)
	}
	s.logger.Info("article updated", "id", id)
	s.notify(ctx, domain.ActionUpdate, domain.KindArticle, id, article)
	return article, nil
}

func (s *ContentService) DeleteArticle(ctx context.Context, id int64) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	s.logger.Info("article deleted", "id", id)
	s.notify(ctx, domain.ActionDelete, domain.KindArticle, id, nil)
	return nil
}

func (s *ContentService) ListVideos(ctx context.Context, limit int) ([]domain.Video, error) {
	videos, err := s.videos.List(ctx, s.resolveLimit(limit, s.listing.VideoLimit))
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

func (s *ContentService) GetVideo(ctx context.Context, id int64) (*domain.Video, error) {
	video, err := s.videos.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get video %d: %w", id, err)
	}
	if video == nil {
		return nil, domain.ErrNotFound
	}
	return video, nil
}

func (s *ContentService) CreateVideo(ctx context.Context, in domain.NewVideo) (*domain.Video, error) {
	video, err := s.videos.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	s.logger.Info("video created", "id", video.ID, "platform", video.Platform)
	s.notify(ctx, domain.ActionCreate, domain.KindVideo, video.ID, video)
	return video, nil
}

func (s *ContentService) UpdateVideo(ctx context.Context, id int64, patch domain.VideoPatch) (*domain.Video, error) {
	video, err := s.videos.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update video %d: %w", id, err)
	}
	s.logger.Info("video updated", "id", id)
	s.notify(ctx, domain.ActionUpdate, domain.KindVideo, id, video)
	return video, nil
}

func (s *ContentService) DeleteVideo(ctx context.Context, id int64) error {
	if err := s.videos.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete video %d: %w", id, err)
	}
	s.logger.Info("video deleted", "id", id)
	s.notify(ctx, domain.ActionDelete, domain.KindVideo, id, nil)
	return nil
}

func (s *ContentService) ListEpapers(ctx context.Context, limit int) ([]domain.Epaper, error) {
	epapers, err := s.epapers.List(ctx, s.resolveLimit(limit, s.listing.EpaperLimit))
	if err != nil {
		return nil, fmt.Errorf("list epapers: %w", err)
	}
	return epapers, nil
}

func (s *ContentService) GetEpaper(ctx context.Context, id int64) (*domain.Epaper, error) {
	epaper, err := s.epapers.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get epaper %d: %w", id, err)
	}
	if epaper == nil {
		return nil, domain.ErrNotFound
	}
	return epaper, nil
}

func (s *ContentService) CreateEpaper(ctx context.Context, in domain.NewEpaper) (*domain.Epaper, error) {
	epaper, err := s.epapers.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create epaper: %w", err)
	}
	s.logger.Info("epaper created", "id", epaper.ID)
	s.notify(ctx, domain.ActionCreate, domain.KindEpaper, epaper.ID, epaper)
	return epaper, nil
}

func (s *ContentService) UpdateEpaper(ctx context.Context, id int64, patch domain.EpaperPatch) (*domain.Epaper, error) {
	epaper, err := s.epapers.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update epaper %d: %w", id, err)
	}
	s.logger.Info("epaper updated", "id", id)
	s.notify(ctx, domain.ActionUpdate, domain.KindEpaper, id, epaper)
	return epaper, nil
}

func (s *ContentService) DeleteEpaper(ctx context.Context, id int64) error {
	if err := s.epapers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete epaper %d: %w", id, err)
	}
	s.logger.Info("epaper deleted", "id", id)
	s.notify(ctx, domain.ActionDelete, domain.KindEpaper, id, nil)
	return nil
}
