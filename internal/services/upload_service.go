package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UploadService writes an uploaded photo to the configured directory and
// returns the stored filename. A file with a disallowed extension is
// skipped silently: SavePhoto returns "" and no error.
type UploadService interface {
	SavePhoto(userID uint, file *multipart.FileHeader) (string, error)
}

type uploadService struct {
	uploadDir         string
	allowedExtensions map[string]bool
	now               func() time.Time
}

func NewUploadService(uploadDir string, allowedExtensions map[string]bool) UploadService {
	return &uploadService{
		uploadDir:         uploadDir,
		allowedExtensions: allowedExtensions,
		now:               time.Now,
	}
}

func (s *uploadService) SavePhoto(userID uint, file *multipart.FileHeader) (string, error) {
	name := sanitizeFilename(file.Filename)

	ext := strings.ToLower(filepath.Ext(name))
	if !s.allowedExtensions[ext] {
		return "", nil
	}

	// Prefix with owner id and submission time so concurrent uploads by
	// different users cannot collide.
	stored := fmt.Sprintf("%d_%d_%s", userID, s.now().Unix(), name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.uploadDir, stored))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return stored, nil
}

// sanitizeFilename strips any path components and characters that have no
// business in a filename on disk.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
