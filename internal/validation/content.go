package validation

import (
	"time"

	"news_portal/internal/domain"
)

type articleRules struct {
	Headline *string `json:"headline" validate:"required"`
	Content  *string `json:"content" validate:"required"`
	Excerpt  *string `json:"excerpt" validate:"required"`
	Category *string `json:"category" validate:"required"`
	Author   *string `json:"author" validate:"required"`
}

func decodeArticle(p *payload) domain.ArticlePatch {
	return domain.ArticlePatch{
		Headline:    required(p, "headline"),
		Content:     required(p, "content"),
		Excerpt:     required(p, "excerpt"),
		Category:    required(p, "category"),
		Author:      required(p, "author"),
		ImageURL:    optionalString(p, "imageUrl"),
		PublishedAt: decode[time.Time](p, "publishedAt", false, expectTimestamp),
		IsPublished: decode[bool](p, "isPublished", false, expectBoolean),
	}
}

// Article validates a create payload.
func Article(body []byte) (domain.NewArticle, error) {
	p, err := parse(body)
	if err != nil {
		return domain.NewArticle{}, err
	}

	f := decodeArticle(p)
	p.require(articleRules{
		Headline: f.Headline.Value,
		Content:  f.Content.Value,
		Excerpt:  f.Excerpt.Value,
		Category: f.Category.Value,
		Author:   f.Author.Value,
	})
	if err := p.err(); err != nil {
		return domain.NewArticle{}, err
	}

	return domain.NewArticle{
		Headline:    str(f.Headline),
		Content:     str(f.Content),
		Excerpt:     str(f.Excerpt),
		Category:    str(f.Category),
		Author:      str(f.Author),
		ImageURL:    f.ImageURL.Value,
		PublishedAt: f.PublishedAt.Value,
		IsPublished: f.IsPublished.Value,
	}, nil
}

// ArticlePatch validates a partial update; absent fields stay unset.
func ArticlePatch(body []byte) (domain.ArticlePatch, error) {
	p, err := parse(body)
	if err != nil {
		return domain.ArticlePatch{}, err
	}

	f := decodeArticle(p)
	if err := p.err(); err != nil {
		return domain.ArticlePatch{}, err
	}
	return f, nil
}

type videoRules struct {
	Title    *string `json:"title" validate:"required"`
	Platform *string `json:"platform" validate:"required"`
	VideoURL *string `json:"videoUrl" validate:"required"`
}

func decodeVideo(p *payload) domain.VideoPatch {
	return domain.VideoPatch{
		Title:        required(p, "title"),
		Description:  optionalString(p, "description"),
		Platform:     required(p, "platform"),
		VideoURL:     required(p, "videoUrl"),
		ThumbnailURL: optionalString(p, "thumbnailUrl"),
		Duration:     optionalString(p, "duration"),
		Views:        decode[int](p, "views", false, expectInteger),
		PublishedAt:  decode[time.Time](p, "publishedAt", false, expectTimestamp),
	}
}

func Video(body []byte) (domain.NewVideo, error) {
	p, err := parse(body)
	if err != nil {
		return domain.NewVideo{}, err
	}

	f := decodeVideo(p)
	p.require(videoRules{
		Title:    f.Title.Value,
		Platform: f.Platform.Value,
		VideoURL: f.VideoURL.Value,
	})
	p.nonNegative("views", f.Views)
	if err := p.err(); err != nil {
		return domain.NewVideo{}, err
	}

	return domain.NewVideo{
		Title:        str(f.Title),
		Description:  f.Description.Value,
		Platform:     str(f.Platform),
		VideoURL:     str(f.VideoURL),
		ThumbnailURL: f.ThumbnailURL.Value,
		Duration:     f.Duration.Value,
		Views:        f.Views.Value,
		PublishedAt:  f.PublishedAt.Value,
	}, nil
}

func VideoPatch(body []byte) (domain.VideoPatch, error) {
	p, err := parse(body)
	if err != nil {
		return domain.VideoPatch{}, err
	}

	f := decodeVideo(p)
	p.nonNegative("views", f.Views)
	if err := p.err(); err != nil {
		return domain.VideoPatch{}, err
	}
	return f, nil
}

type epaperRules struct {
	Title  *string `json:"title" validate:"required"`
	PDFURL *string `json:"pdfUrl" validate:"required"`
}

func decodeEpaper(p *payload) domain.EpaperPatch {
	return domain.EpaperPatch{
		Title:         required(p, "title"),
		Description:   optionalString(p, "description"),
		PDFURL:        required(p, "pdfUrl"),
		ThumbnailURL:  optionalString(p, "thumbnailUrl"),
		Edition:       optionalString(p, "edition"),
		Language:      optionalString(p, "language"),
		PublishDate:   decode[time.Time](p, "publishDate", false, expectTimestamp),
		FileSize:      optionalString(p, "fileSize"),
		Pages:         decode[int](p, "pages", true, expectInteger),
		DownloadCount: decode[int](p, "downloadCount", false, expectInteger),
		IsPublished:   decode[bool](p, "isPublished", false, expectBoolean),
	}
}

func checkEpaperCounters(p *payload, f domain.EpaperPatch) {
	p.nonNegative("pages", f.Pages)
	p.nonNegative("downloadCount", f.DownloadCount)
}

func Epaper(body []byte) (domain.NewEpaper, error) {
	p, err := parse(body)
	if err != nil {
		return domain.NewEpaper{}, err
	}

	f := decodeEpaper(p)
	p.require(epaperRules{
		Title:  f.Title.Value,
		PDFURL: f.PDFURL.Value,
	})
	checkEpaperCounters(p, f)
	if err := p.err(); err != nil {
		return domain.NewEpaper{}, err
	}

	return domain.NewEpaper{
		Title:         str(f.Title),
		Description:   f.Description.Value,
		PDFURL:        str(f.PDFURL),
		ThumbnailURL:  f.ThumbnailURL.Value,
		Edition:       f.Edition.Value,
		Language:      f.Language,
		PublishDate:   f.PublishDate.Value,
		FileSize:      f.FileSize.Value,
		Pages:         f.Pages.Value,
		DownloadCount: f.DownloadCount.Value,
		IsPublished:   f.IsPublished.Value,
	}, nil
}

func EpaperPatch(body []byte) (domain.EpaperPatch, error) {
	p, err := parse(body)
	if err != nil {
		return domain.EpaperPatch{}, err
	}

	f := decodeEpaper(p)
	checkEpaperCounters(p, f)
	if err := p.err(); err != nil {
		return domain.EpaperPatch{}, err
	}
	return f, nil
}

type adminFlagRules struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

// AdminFlag validates the body of an admin-flag mutation: {"isAdmin": bool}.
func AdminFlag(body []byte) (bool, error) {
	p, err := parse(body)
	if err != nil {
		return false, err
	}

	f := decode[bool](p, "isAdmin", false, expectBoolean)
	p.require(adminFlagRules{IsAdmin: f.Value})
	if err := p.err(); err != nil {
		return false, err
	}
	return *f.Value, nil
}
