package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"news_portal/internal/domain"
)

const epaperColumns = `id, title, description, pdf_url, thumbnail_url, edition, language,
	publish_date, file_size, pages, download_count, is_published, created_at, updated_at`

type EpaperStore struct {
	db *sqlx.DB
}

func NewEpaperStore(db *sqlx.DB) *EpaperStore {
	return &EpaperStore{db: db}
}

func (s *EpaperStore) Get(ctx context.Context, id int64) (*domain.Epaper, error) {
	var epaper domain.Epaper
	err := s.db.GetContext(ctx, &epaper, `SELECT `+epaperColumns+` FROM epapers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &epaper, nil
}

func (s *EpaperStore) List(ctx context.Context, limit int) ([]domain.Epaper, error) {
	query := `SELECT ` + epaperColumns + ` FROM epapers
		ORDER BY publish_date DESC, id DESC
		LIMIT $1`

	epapers := []domain.Epaper{}
	if err := s.db.SelectContext(ctx, &epapers, query, limit); err != nil {
		return nil, err
	}
	return epapers, nil
}

func (s *EpaperStore) Create(ctx context.Context, in domain.NewEpaper) (*domain.Epaper, error) {
	query := `
		INSERT INTO epapers (
			title, description, pdf_url, thumbnail_url, edition, language,
			publish_date, file_size, pages, download_count, is_published
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			COALESCE($7, NOW()), $8, $9, COALESCE($10, 0), COALESCE($11, TRUE)
		)
		RETURNING ` + epaperColumns

	var epaper domain.Epaper
	err := s.db.QueryRowxContext(ctx, query,
		in.Title,
		in.Description,
		in.PDFURL,
		in.ThumbnailURL,
		in.Edition,
		in.LanguageOrDefault(),
		in.PublishDate,
		in.FileSize,
		in.Pages,
		in.DownloadCount,
		in.IsPublished,
	).StructScan(&epaper)
	if err != nil {
		return nil, err
	}
	return &epaper, nil
}

func (s *EpaperStore) Update(ctx context.Context, id int64, patch domain.EpaperPatch) (*domain.Epaper, error) {
	query, args := updateQuery("epapers", "id", patch.Assignments(), epaperColumns)
	args = append(args, id)

	var epaper domain.Epaper
	err := s.db.QueryRowxContext(ctx, query, args...).StructScan(&epaper)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &epaper, nil
}

func (s *EpaperStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM epapers WHERE id = $1`, id)
	return err
}
