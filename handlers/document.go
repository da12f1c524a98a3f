package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"caregrid/middleware"
	ai "caregrid/services/intelligence"
	"caregrid/services/schedule"
	"caregrid/services/storage"
	"caregrid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxDocumentSize = 10 * 1024 * 1024 // 10MB

// imageFormats maps accepted upload extensions to the bare format name the
// vision model expects. PDFs are rendered client-side to images before
// upload, so everything arriving here is an image.
var imageFormats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".webp": "webp",
}

// DocumentHandler runs the upload -> extract -> validate -> save pipeline
// for schedule documents.
type DocumentHandler struct {
	Service   schedule.ScheduleService
	Extractor ai.ScheduleExtractor
	Storage   storage.StorageService
}

func NewDocumentHandler(svc schedule.ScheduleService, extractor ai.ScheduleExtractor, store storage.StorageService) *DocumentHandler {
	return &DocumentHandler{Service: svc, Extractor: extractor, Storage: store}
}

// UploadDocumentHandler accepts a multipart "document" file, archives the
// raw upload, extracts a schedule from it and saves the validated result.
// Extraction failures never surface as hard errors: validation substitutes
// the documented defaults and the schedule is saved anyway, with the
// response telling the client whether defaults were applied.
func (h *DocumentHandler) UploadDocumentHandler(c *gin.Context) {
	userID := middleware.UserID(c)
	logger := utils.GetLogger()

	file, header, err := c.Request.FormFile("document")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Document file is required", err.Error())
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	format, ok := imageFormats[ext]
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Unsupported document type",
			fmt.Sprintf("expected one of png/jpg/jpeg/webp, got %s", ext))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read document", err.Error())
		return
	}

	// Archive the raw upload; extraction proceeds even if archiving fails.
	var documentID string
	if h.Storage != nil {
		tmp, err := os.CreateTemp("", "schedule-doc-*"+ext)
		if err == nil {
			defer os.Remove(tmp.Name())
			if _, err := tmp.Write(data); err == nil {
				tmp.Close()
				if id, err := h.Storage.UploadDocument(c.Request.Context(), tmp.Name(), userID); err != nil {
					logger.Warn("document archive failed", zap.Error(err))
				} else {
					documentID = id
				}
			}
		}
	}

	raw, err := h.Extractor.ExtractFromImage(c.Request.Context(), format, data)
	if err != nil {
		logger.Warn("document extraction failed, using defaults", zap.Error(err))
		raw = ""
	}

	sig, err := weekSignalFrom(c.Query("start"), c.Query("week"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid week signal", err.Error())
		return
	}

	draft := schedule.ValidateDocumentExtraction(raw, schedule.ChannelImage, sig)
	record, err := h.Service.SaveDraft(userID, draft)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not save extracted schedule", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"schedule":   record,
		"documentId": documentID,
	})
}
