package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nrandle/image-downloader/internal/entity"
)

// LegacyUpload keeps the original single-shot contract: CSV in, every URL of
// the default column downloaded into the shared downloads folder.
func (h *ImageHandler) LegacyUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part in the request."})
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected for uploading."})
		return
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file."})
		return
	}

	count, folder, err := h.service.ImportCSV(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, entity.ErrMalformedCSV) || errors.Is(err, entity.ErrUnknownColumn) || errors.Is(err, entity.ErrNoImageURLs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.LegacyUploadResponse{
		Message:        "Images downloaded successfully.",
		DownloadFolder: folder,
		ImageCount:     count,
	})
}

// LegacyConvert converts everything in the downloads folder to JPG.
func (h *ImageHandler) LegacyConvert(c *gin.Context) {
	if _, err := h.service.ConvertDownloads(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Images converted to JPG."})
}
