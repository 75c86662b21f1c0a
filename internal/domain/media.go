package domain

import "time"

// DefaultEpaperLanguage is stored when a new e-paper omits its language.
const DefaultEpaperLanguage = "english"

type Video struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description" db:"description"`
	Platform     string    `json:"platform" db:"platform"` // youtube, instagram, facebook, twitter
	VideoURL     string    `json:"videoUrl" db:"video_url"`
	ThumbnailURL *string   `json:"thumbnailUrl" db:"thumbnail_url"`
	Duration     *string   `json:"duration" db:"duration"`
	Views        int       `json:"views" db:"views"`
	PublishedAt  time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type NewVideo struct {
	Title        string
	Description  *string
	Platform     string
	VideoURL     string
	ThumbnailURL *string
	Duration     *string
	Views        *int
	PublishedAt  *time.Time
}

type VideoPatch struct {
	Title        Field[string]
	Description  Field[string]
	Platform     Field[string]
	VideoURL     Field[string]
	ThumbnailURL Field[string]
	Duration     Field[string]
	Views        Field[int]
	PublishedAt  Field[time.Time]
}

func (p VideoPatch) Assignments() []Assignment {
	var out []Assignment
	out = appendAssignment(out, "title", p.Title)
	out = appendAssignment(out, "description", p.Description)
	out = appendAssignment(out, "platform", p.Platform)
	out = appendAssignment(out, "video_url", p.VideoURL)
	out = appendAssignment(out, "thumbnail_url", p.ThumbnailURL)
	out = appendAssignment(out, "duration", p.Duration)
	out = appendAssignment(out, "views", p.Views)
	out = appendAssignment(out, "published_at", p.PublishedAt)
	return out
}

func (p VideoPatch) ApplyTo(v *Video) {
	p.Title.assignTo(&v.Title)
	p.Description.assignPtr(&v.Description)
	p.Platform.assignTo(&v.Platform)
	p.VideoURL.assignTo(&v.VideoURL)
	p.ThumbnailURL.assignPtr(&v.ThumbnailURL)
	p.Duration.assignPtr(&v.Duration)
	p.Views.assignTo(&v.Views)
	p.PublishedAt.assignTo(&v.PublishedAt)
}

type Epaper struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   *string   `json:"description" db:"description"`
	PDFURL        string    `json:"pdfUrl" db:"pdf_url"`
	ThumbnailURL  *string   `json:"thumbnailUrl" db:"thumbnail_url"`
	Edition       *string   `json:"edition" db:"edition"` // morning, evening, weekend
	Language      *string   `json:"language" db:"language"`
	PublishDate   time.Time `json:"publishDate" db:"publish_date"`
	FileSize      *string   `json:"fileSize" db:"file_size"`
	Pages         *int      `json:"pages" db:"pages"`
	DownloadCount int       `json:"downloadCount" db:"download_count"`
	IsPublished   bool      `json:"isPublished" db:"is_published"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// NewEpaper is a validated create payload. Language distinguishes an
// omitted value (default language) from an explicit null.
type NewEpaper struct {
	Title         string
	Description   *string
	PDFURL        string
	ThumbnailURL  *string
	Edition       *string
	Language      Field[string]
	PublishDate   *time.Time
	FileSize      *string
	Pages         *int
	DownloadCount *int
	IsPublished   *bool
}

// LanguageOrDefault resolves the language column for insertion.
func (e NewEpaper) LanguageOrDefault() *string {
	if !e.Language.Set {
		lang := DefaultEpaperLanguage
		return &lang
	}
	return e.Language.Value
}

type EpaperPatch struct {
	Title         Field[string]
	Description   Field[string]
	PDFURL        Field[string]
	ThumbnailURL  Field[string]
	Edition       Field[string]
	Language      Field[string]
	PublishDate   Field[time.Time]
	FileSize      Field[string]
	Pages         Field[int]
	DownloadCount Field[int]
	IsPublished   Field[bool]
}

func (p EpaperPatch) Assignments() []Assignment {
	var out []Assignment
	out = appendAssignment(out, "title", p.Title)
	out = appendAssignment(out, "description", p.Description)
	out = appendAssignment(out, "pdf_url", p.PDFURL)
	out = appendAssignment(out, "thumbnail_url", p.ThumbnailURL)
	out = appendAssignment(out, "edition", p.Edition)
	out = appendAssignment(out, "language", p.Language)
	out = appendAssignment(out, "publish_date", p.PublishDate)
	out = appendAssignment(out, "file_size", p.FileSize)
	out = appendAssignment(out, "pages", p.Pages)
	out = appendAssignment(out, "download_count", p.DownloadCount)
	out = appendAssignment(out, "is_published", p.IsPublished)
	return out
}

func (p EpaperPatch) ApplyTo(e *Epaper) {
	p.Title.assignTo(&e.Title)
	p.Description.assignPtr(&e.Description)
	p.PDFURL.assignTo(&e.PDFURL)
	p.ThumbnailURL.assignPtr(&e.ThumbnailURL)
	p.Edition.assignPtr(&e.Edition)
	p.Language.assignPtr(&e.Language)
	p.PublishDate.assignTo(&e.PublishDate)
	p.FileSize.assignPtr(&e.FileSize)
	p.Pages.assignPtr(&e.Pages)
	p.DownloadCount.assignTo(&e.DownloadCount)
	p.IsPublished.assignTo(&e.IsPublished)
}
