package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	services "github.com/propbase/ocr-gateway/service"
	"github.com/propbase/ocr-gateway/types"
)

type UploadHandler struct {
	ocrService *services.OCRService
	maxSize    int64
}

func NewUploadHandler(ocrService *services.OCRService, maxSize int64) *UploadHandler {
	if maxSize <= 0 {
		maxSize = 20 << 20
	}
	return &UploadHandler{
		ocrService: ocrService,
		maxSize:    maxSize,
	}
}

// HandleUpload accepts a multipart upload in the "file" field, runs the OCR
// dispatcher over it and returns the extracted text with its source tag.
func (h *UploadHandler) HandleUpload(c *gin.Context) {

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid file",
		})
		return
	}
	defer file.Close()

	if header.Size > h.maxSize {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: fmt.Sprintf("File too large, limit is %d bytes", h.maxSize),
		})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "Failed to read upload: " + err.Error(),
		})
		return
	}
	if int64(len(data)) > h.maxSize {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: fmt.Sprintf("File too large, limit is %d bytes", h.maxSize),
		})
		return
	}

	doc := types.UploadedDocument{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	result, err := h.ocrService.Extract(c.Request.Context(), doc, boolParam(c, "use_google_vision"))
	if err != nil {
		c.JSON(statusForError(err), types.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.ExtractResponse{
		Text:        result.Text,
		Source:      result.Source,
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
	})
}

// boolParam reads a boolean from the query string first, then the form body.
func boolParam(c *gin.Context, name string) bool {
	value := c.Query(name)
	if value == "" {
		value = c.PostForm(name)
	}
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

func statusForError(err error) int {
	var inputErr *types.ClientInputError
	var configErr *types.EngineConfigError
	switch {
	case errors.As(err, &inputErr), errors.As(err, &configErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
