package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nrandle/image-downloader/internal/entity"
)

// UploadImages converts a multipart batch of files. Unsupported or broken
// files are reported per candidate, never as a request failure.
func (h *ImageHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image files provided"})
		return
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image files provided"})
		return
	}

	files := make([]entity.Upload, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		data, err := readMultipartFile(fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file."})
			return
		}
		files = append(files, entity.Upload{Filename: fileHeader.Filename, Data: data})
	}

	quality, _ := strconv.Atoi(c.PostForm("quality"))
	keepPNG, _ := strconv.ParseBool(c.DefaultPostForm("keep_png", "false"))
	enhance, _ := strconv.ParseBool(c.DefaultPostForm("enhance_filenames", "false"))

	opts := entity.ConversionOptions{
		Quality:          quality,
		KeepOriginal:     keepPNG,
		EnhanceFilenames: enhance,
	}

	result, err := h.service.ProcessUploads(c.Request.Context(), files, opts, c.PostForm("folder_key"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, batchResponse(result, true))
}
