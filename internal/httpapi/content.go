package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"news_portal/internal/domain"
	"news_portal/internal/validation"
)

// pathID parses the :id segment. ok is false for non-numeric ids.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// queryLimit returns 0, meaning the default, for a missing or malformed limit.
func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}

func (s *Server) listArticles(c *gin.Context) {
	articles, err := s.content.ListArticles(c.Request.Context(), c.Query("category"), queryLimit(c))
	if err != nil {
		s.writeError(c, err, articleResource, "Failed to fetch articles")
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (s *Server) getArticle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.writeError(c, domain.ErrNotFound, articleResource, "Failed to fetch article")
		return
	}
	article, err := s.content.GetArticle(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, articleResource, "Failed to fetch article")
		return
	}
	c.JSON(http.StatusOK, article)
}

func (s *Server) searchArticles(c *gin.Context) {
	articles, err := s.content.SearchArticles(c.Request.Context(), c.Param("query"))
	if err != nil {
		s.writeError(c, err, articleResource, "Failed to search articles")
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (s *Server) createArticle(c *gin.Context) {
	const failure = "Failed to create article"
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, err, articleResource, failure)
		return
	}
	in, err := validation.Article(body)
	if err != nil {
		s.writeError(c, err, articleResource, failure)
		return
	}
	article, err := s.content.CreateArticle(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err, articleResource, failure)
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (s *Server) updateArticle(c *gin.Context) {
	const failure = "Failed to update article"
	id, ok := pathID(c)
	if !ok {
		s.writeError(c, errInvalidID, articleResource, failure)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, err, articleResource, failure)
		return
	}
	patch, err := validation.ArticlePatch(body)
	if err != nil {
		s.writeError(c, err, articleResource, failure)
		return
	}
	article, err := s.content.UpdateArticle(c.Request.Context(), id, patch)
	if err != nil {
		s.writeError(c, err, articleResource, failure)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (s *Server) deleteArticle(c *gin.Context) {
	const failure = "Failed to delete article"
	id, ok := pathID(c)
	if !ok {
		s.writeError(c, errInvalidID, articleResource, failure)
		return
	}
	if err := s.content.DeleteArticle(c.Request.Context(), id); err != nil {
		s.writeError(c, err, articleResource, failure)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listVideos(c *gin.Context) {
	videos, err := s.content.ListVideos(c.Request.Context(), queryLimit(c))
	if err != nil {
		s.writeError(c, err, videoResource, "Failed to fetch videos")
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (s *Server) getVideo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.writeError(c, domain.ErrNotFound, videoResource, "Failed to fetch video")
		return
	}
	video, err := s.content.GetVideo(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, videoResource, "Failed to fetch video")
		return
	}
	c.JSON(http.StatusOK, video)
}

func (s *Server) createVideo(c *gin.Context) {
	const failure = "Failed to create video"
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, err, videoResource, failure)
		return
	}
	in, err := validation.Video(body)
	if err != nil {
		s.writeError(c, err, videoResource, failure)
		return
	}
	video, err := s.content.CreateVideo(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err, videoResource, failure)
		return
	}
	c.JSON(http.StatusCreated, video)
}

func (s *Server) updateVideo(c *gin.Context) {
	const failure = "Failed to update video"
	id, ok := pathID(c)
	if !ok {
		s.writeError(c, errInvalidID, videoResource, failure)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, err, videoResource, failure)
		return
	}
	patch, err := validation.VideoPatch(body)
	if err != nil {
		s.writeError(c, err, videoResource, failure)
		return
	}
	video, err := s.content.UpdateVideo(c.Request.Context(), id, patch)
	if err != nil {
		s.writeError(c, err, videoResource, failure)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (s *Server) deleteVideo(c *gin.Context) {
	const failure = "Failed to delete video"
	id, ok := pathID(c)
	if !ok {
		s.writeError(c, errInvalidID, videoResource, failure)
		return
	}
	if err := s.content.DeleteVideo(c.Request.Context(), id); err != nil {
		s.writeError(c, err, videoResource, failure)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listEpapers(c *gin.Context) {
	epapers, err := s.content.ListEpapers(c.Request.Context(), queryLimit(c))
	if err != nil {
		s.writeError(c, err, epaperResource, "Failed to fetch e-papers")
		return
	}
	c.JSON(http.StatusOK, epapers)
}

func (s *Server) getEpaper(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.writeError(c, domain.ErrNotFound, epaperResource, "Failed to fetch e-paper")
		return
	}
	epaper, err := s.content.GetEpaper(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, epaperResource, "Failed to fetch e-paper")
		return
	}
	c.JSON(http.StatusOK, epaper)
}

func (s *Server) createEpaper(c *gin.Context) {
	const failure = "Failed to create e-paper"
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, err, epaperResource, failure)
		return
	}
	in, err := validation.Epaper(body)
	if err != nil {
		s.writeError(c, err, epaperResource, failure)
		return
	}
	epaper, err := s.content.CreateEpaper(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err, epaperResource, failure)
		return
	}
	c.JSON(http.StatusCreated, epaper)
}

func (s *Server) updateEpaper(c *gin.Context) {
	const failure = "Failed to update e-paper"
	id, ok := pathID(c)
	if !ok {
		s.writeError(c, errInvalidID, epaperResource, failure)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, err, epaperResource, failure)
		return
	}
	patch, err := validation.EpaperPatch(body)
	if err != nil {
		s.writeError(c, err, epaperResource, failure)
		return
	}
	epaper, err := s.content.UpdateEpaper(c.Request.Context(), id, patch)
	if err != nil {
		s.writeError(c, err, epaperResource, failure)
		return
	}
	c.JSON(http.StatusOK, epaper)
}

func (s *Server) deleteEpaper(c *gin.Context) {
	const failure = "Failed to delete e-paper"
	id, ok := pathID(c)
	if !ok {
		s.writeError(c, errInvalidID, epaperResource, failure)
		return
	}
	if err := s.content.DeleteEpaper(c.Request.Context(), id); err != nil {
		s.writeError(c, err, epaperResource, failure)
		return
	}
	c.Status(http.StatusNoContent)
}
