package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"news_portal/internal/domain"
)

const videoColumns = `id, title, description, platform, video_url, thumbnail_url,
	duration, views, published_at, created_at, updated_at`

type VideoStore struct {
	db *sqlx.DB
}

func NewVideoStore(db *sqlx.DB) *VideoStore {
	return &VideoStore{db: db}
}

func (s *VideoStore) Get(ctx context.Context, id int64) (*domain.Video, error) {
	var video domain.Video
	err := s.db.GetContext(ctx, &video, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *VideoStore) List(ctx context.Context, limit int) ([]domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos
		ORDER BY published_at DESC, id DESC
		LIMIT $1`

	videos := []domain.Video{}
	if err := s.db.SelectContext(ctx, &videos, query, limit); err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *VideoStore) Create(ctx context.Context, in domain.NewVideo) (*domain.Video, error) {
	query := `
		INSERT INTO videos (
			title, description, platform, video_url, thumbnail_url,
			duration, views, published_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, COALESCE($7, 0), COALESCE($8, NOW())
		)
		RETURNING ` + videoColumns

	var video domain.Video
	err := s.db.QueryRowxContext(ctx, query,
		in.Title,
		in.Description,
		in.Platform,
		in.VideoURL,
		in.ThumbnailURL,
		in.Duration,
		in.Views,
		in.PublishedAt,
	).StructScan(&video)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *VideoStore) Update(ctx context.Context, id int64, patch domain.VideoPatch) (*domain.Video, error) {
	query, args := updateQuery("videos", "id", patch.Assignments(), videoColumns)
	args = append(args, id)

	var video domain.Video
	err := s.db.QueryRowxContext(ctx, query, args...).StructScan(&video)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *VideoStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	return err
}
