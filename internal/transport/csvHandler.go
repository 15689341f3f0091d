package transport

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nrandle/image-downloader/internal/entity"
)

func (h *ImageHandler) PrepareCSV(c *gin.Context) {
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

	prep, err := h.service.PrepareCSV(fileHeader.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prep)
}

func (h *ImageHandler) ProcessCSV(c *gin.Context) {
	var req entity.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.ProcessCSV(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownToken) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, batchResponse(result, false))
}

// batchResponse shapes a pipeline result for the wire.
func batchResponse(result *entity.BatchResult, withType bool) entity.BatchResponse {
	processed := result.ProcessedNames()
	skipped := result.SkippedEntries()

	resp := entity.BatchResponse{
		Message:   fmt.Sprintf("Processed %d of %d images.", len(processed), len(result.Outcomes)),
		Processed: processed,
		Skipped:   skipped,
		FolderKey: result.FolderKey,
	}
	if len(skipped) > 0 {
		resp.Note = fmt.Sprintf("%d item(s) skipped.", len(skipped))
	}
	if withType {
		resp.MessageType = "success"
		if len(skipped) > 0 {
			resp.MessageType = "warning"
		}
	}
	return resp
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
