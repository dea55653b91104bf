package proposal

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaUploader pushes proposal media to the object store and returns
// its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

type Handler struct {
	repo  *Repository
	media MediaUploader
}

func NewHandler(repo *Repository, media MediaUploader) *Handler {
	return &Handler{repo: repo, media: media}
}

//
// --------------------------------------------------
// GET /proposals/:id/events
// --------------------------------------------------
//

func (h *Handler) ListEvents() gin.HandlerFunc {
	return func(c *gin.Context) {
		proposalID := c.Param("id")

		events, err := h.repo.ListEvents(c.Request.Context(), proposalID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

//
// --------------------------------------------------
// GET /proposals/:id/acceptance
// --------------------------------------------------
//

func (h *Handler) GetAcceptance() gin.HandlerFunc {
	return func(c *gin.Context) {
		proposalID := c.Param("id")

		p, err := h.repo.GetByID(c.Request.Context(), proposalID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		selections, err := h.repo.ListSelections(c.Request.Context(), proposalID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":              p.Status,
			"accepted_at":         p.AcceptedAt,
			"accepted_total":      p.AcceptedTotal,
			"accepted_version_id": p.AcceptedVersionID,
			"selections":          selections,
		})
	}
}

//
// --------------------------------------------------
// POST /proposals/:id/images
// --------------------------------------------------
//

func (h *Handler) UploadImages() gin.HandlerFunc {
	return func(c *gin.Context) {
		proposalID := c.Param("id")

		if _, err := h.repo.GetByID(c.Request.Context(), proposalID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
			return
		}

		files := form.File["images"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no images provided"})
			return
		}

		var urls []string
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
				return
			}

			key := fmt.Sprintf("proposals/%s/%s-%s", proposalID, uuid.New().String(), fileHeader.Filename)
			url, err := h.media.Upload(c.Request.Context(), key, file)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed: " + err.Error()})
				return
			}
			urls = append(urls, url)
		}

		// First uploaded image becomes the cover.
		if err := h.repo.SaveCoverImage(c.Request.Context(), proposalID, urls[0]); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"urls": urls})
	}
}
