// Package stub is an in-memory double of the verification intake
// service for the client test suite and the CLI's offline mode. It
// mirrors the wire contract only; risk figures are fixed placeholders,
// the real scoring engine lives server-side.
package stub

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"verification-client/internal/requests"
	"verification-client/internal/shared/telemetry"
)

const (
	placeholderRiskScore = 10
	placeholderRiskLevel = requests.RiskLow
)

var allowedContentTypes = map[string]struct{}{
	"image/png":          {},
	"image/jpeg":         {},
	"image/jpg":          {},
	"image/webp":         {},
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

type server struct {
	store     *memoryStore
	uploadDir string
}

// NewRouter constructs the stub's Gin engine. Uploaded files land in
// uploadDir and are served back under /static/uploads.
func NewRouter(uploadDir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLog())

	s := &server{store: newMemoryStore(), uploadDir: uploadDir}

	r.GET("/requests", s.list)
	r.POST("/requests", s.create)
	r.GET("/requests/:id", s.get)
	r.PATCH("/requests/:id/status", s.updateStatus)
	r.DELETE("/requests/:id", s.remove)
	r.POST("/uploads/document", s.upload)
	r.GET("/static/uploads/:name", s.download)
	return r
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		telemetry.Logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func detail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": message})
}

func (s *server) list(c *gin.Context) {
	name := c.Query("name")
	status := requests.Status(c.Query("status"))
	c.JSON(http.StatusOK, s.store.list(name, status))
}

func (s *server) create(c *gin.Context) {
	var payload requests.CreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		detail(c, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	required := []struct {
		name  string
		value string
	}{
		{"full_name", payload.FullName},
		{"email", payload.Email},
		{"phone", payload.Phone},
		{"country", payload.Country},
		{"document_type", payload.DocumentType},
		{"document_number", payload.DocumentNumber},
		{"document_image_url", payload.DocumentImageURL},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			detail(c, http.StatusUnprocessableEntity, field.name+" is required")
			return
		}
	}

	record := requests.VerificationRequest{
		ID:                       uuid.NewString(),
		FullName:                 payload.FullName,
		Email:                    payload.Email,
		Phone:                    payload.Phone,
		Country:                  payload.Country,
		DocumentType:             payload.DocumentType,
		DocumentNumber:           payload.DocumentNumber,
		DocumentImageURL:         payload.DocumentImageURL,
		OriginalDocumentFilename: payload.OriginalDocumentFilename,
		Status:                   requests.StatusPending,
		RiskScore:                placeholderRiskScore,
		RiskLevel:                placeholderRiskLevel,
		CreatedAt:                time.Now().UTC(),
	}
	s.store.insert(record)
	c.JSON(http.StatusOK, record)
}

func (s *server) get(c *gin.Context) {
	record, ok := s.store.get(c.Param("id"))
	if !ok {
		detail(c, http.StatusNotFound, "Request not found")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *server) updateStatus(c *gin.Context) {
	var payload struct {
		Status requests.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || !payload.Status.Valid() {
		detail(c, http.StatusUnprocessableEntity, "Invalid status")
		return
	}

	record, ok := s.store.setStatus(c.Param("id"), payload.Status)
	if !ok {
		detail(c, http.StatusNotFound, "Request not found")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *server) remove(c *gin.Context) {
	if !s.store.remove(c.Param("id")) {
		detail(c, http.StatusNotFound, "Request not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		detail(c, http.StatusBadRequest, "file field is required")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := allowedContentTypes[contentType]; !ok {
		detail(c, http.StatusBadRequest, "Tipo de archivo no permitido: "+contentType)
		return
	}

	storedName := strings.ReplaceAll(uuid.NewString(), "-", "") + filepath.Ext(file.Filename)
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		detail(c, http.StatusInternalServerError, "failed to store file")
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(s.uploadDir, storedName)); err != nil {
		telemetry.Logger.Error("save upload failed", zap.Error(err))
		detail(c, http.StatusInternalServerError, "failed to store file")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":          "/static/uploads/" + storedName,
		"filename":     file.Filename,
		"stored_name":  storedName,
		"content_type": contentType,
	})
}

func (s *server) download(c *gin.Context) {
	name, ok := safeStoredName(c.Param("name"))
	if !ok {
		detail(c, http.StatusNotFound, "Archivo no encontrado")
		return
	}
	target := filepath.Join(s.uploadDir, name)
	if _, err := os.Stat(target); err != nil {
		detail(c, http.StatusNotFound, "Archivo no encontrado")
		return
	}
	c.FileAttachment(target, name)
}

// safeStoredName rejects traversal patterns and path separators so the
// handler only ever serves files directly under the upload dir.
func safeStoredName(name string) (string, bool) {
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	cleaned := path.Base(strings.TrimSpace(name))
	if cleaned == "" || cleaned == "." {
		return "", false
	}
	return cleaned, true
}
