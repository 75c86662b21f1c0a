package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"news_portal/internal/domain"
)

type ArticleStore interface {
	Get(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	Create(ctx context.Context, in domain.NewArticle) (*domain.Article, error)
	Update(ctx context.Context, id int64, patch domain.ArticlePatch) (*domain.Article, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string) ([]domain.Article, error)
}

type VideoStore interface {
	Get(ctx context.Context, id int64) (*domain.Video, error)
	List(ctx context.Context, limit int) ([]domain.Video, error)
	Create(ctx context.Context, in domain.NewVideo) (*domain.Video, error)
	Update(ctx context.Context, id int64, patch domain.VideoPatch) (*domain.Video, error)
	Delete(ctx context.Context, id int64) error
}

type EpaperStore interface {
	Get(ctx context.Context, id int64) (*domain.Epaper, error)
	List(ctx context.Context, limit int) ([]domain.Epaper, error)
	Create(ctx context.Context, in domain.NewEpaper) (*domain.Epaper, error)
	Update(ctx context.Context, id int64, patch domain.EpaperPatch) (*domain.Epaper, error)
	Delete(ctx context.Context, id int64) error
}

type UserStore interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, in domain.UserUpsert) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) (*domain.User, error)
}

type Publisher interface {
	Publish(ctx context.Context, event domain.ContentEvent) error
	Close() error
}
