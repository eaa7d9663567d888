package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"docsign/internal/config"
)

// MaxUploadSize is the hard cap for uploaded PDFs.
const MaxUploadSize = 50 * 1024 * 1024

var (
	ErrFileTooLarge       = errors.New("pdf file size must be less than 50MB")
	ErrInvalidContentType = errors.New("file must be a pdf")
	ErrFileNotFound       = errors.New("stored file not found")
)

// Service manages the on-disk lifecycle of uploaded and generated PDF
// variants. Each stamp or merge produces a new file, nothing is mutated in
// place; superseded files stay on disk until the owning document is deleted.
type Service interface {
	// Save persists an uploaded PDF under {documentID}_{timestamp}.pdf and
	// returns the full path. The content type must declare application/pdf
	// and the payload must carry a PDF header.
	Save(documentID, contentType string, size int64, r io.Reader) (string, error)

	// Resolve maps a bare filename to its full path under the storage
	// directory. Any path prefix in name is stripped, files are served by
	// name alone.
	Resolve(name string) (string, error)

	// Delete removes a stored file. Deleting a missing path is a no-op, so
	// cascading cleanup never fails on already-gone files.
	Delete(path string) error

	// Purge removes every stored variant belonging to a document: the
	// original upload and all _signed/_merged derivatives share the
	// {documentID}_ filename prefix. Best effort, first error is returned
	// after attempting the rest.
	Purge(documentID string) error

	BasePath() string
}

type service struct {
	basePath string
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(cfg *config.Config, logger *zap.Logger) (Service, error) {
	svc := &service{
		basePath: cfg.Storage.PdfPath,
		logger:   logger,
		now:      time.Now,
	}

	if err := os.MkdirAll(svc.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create pdf storage directory: %w", err)
	}

	logger.Info("PDF storage initialized",
		zap.String("base_path", svc.basePath),
	)

	return svc, nil
}

func (s *service) BasePath() string {
	return s.basePath
}

func (s *service) Save(documentID, contentType string, size int64, r io.Reader) (string, error) {
	if !strings.EqualFold(contentType, "application/pdf") {
		return "", ErrInvalidContentType
	}
	if size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	// Sniff the header so a mislabeled upload is caught before it lands on
	// disk as the document's PDF.
	header := make([]byte, 5)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if string(header[:n]) != "%PDF-" {
		return "", ErrInvalidContentType
	}

	fileName := fmt.Sprintf("%s_%s.pdf", documentID, s.now().UTC().Format("20060102150405"))
	filePath := filepath.Join(s.basePath, fileName)

	out, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create pdf file: %w", err)
	}

	// MaxUploadSize+1 so an understated Content-Length still trips the cap.
	written, err := io.Copy(out, io.MultiReader(bytes.NewReader(header[:n]), io.LimitReader(r, MaxUploadSize+1)))
	if err != nil {
		out.Close()
		os.Remove(filePath)
		return "", fmt.Errorf("failed to write pdf file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to write pdf file: %w", err)
	}
	if written > MaxUploadSize {
		os.Remove(filePath)
		return "", ErrFileTooLarge
	}

	s.logger.Info("PDF file saved",
		zap.String("file", fileName),
		zap.Int64("size", written),
	)

	return filePath, nil
}

func (s *service) Resolve(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", ErrFileNotFound
	}

	path := filepath.Join(s.basePath, base)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, base)
	}
	return path, nil
}

func (s *service) Purge(documentID string) error {
	if documentID == "" {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(s.basePath, documentID+"_*.pdf"))
	if err != nil {
		return fmt.Errorf("failed to list document files: %w", err)
	}

	var firstErr error
	for _, path := range matches {
		if err := s.Delete(path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *service) Delete(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete pdf file: %w", err)
	}

	s.logger.Info("PDF file deleted",
		zap.String("file", filepath.Base(path)),
	)
	return nil
}
