package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"talentnest/internal/domain/access"
	"talentnest/internal/logger"
	"talentnest/internal/pkg/apperr"
)

const MaxFileSize = 10 << 20

// allowedMimeTypes covers evidence documents and portfolio images.
var allowedMimeTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Service stores files on local disk and records them in the database.
type Service struct {
	repo       FileRepositoryInterface
	baseDir    string
	publicBase string
	now        func() time.Time
}

func NewService(repo FileRepositoryInterface, baseDir, publicBase string) *Service {
	return &Service{
		repo:       repo,
		baseDir:    baseDir,
		publicBase: "/" + strings.Trim(publicBase, "/"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Upload saves the file under baseDir/YYYY/MM/DD and returns its record.
func (s *Service) Upload(ctx context.Context, actor access.Actor, purpose Purpose, fh *multipart.FileHeader) (*Upload, error) {
	if err := access.Authorize(actor, access.ActionUploadCreate, access.Resource{}); err != nil {
		return nil, err
	}
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return nil, apperr.Validation("file could not be read")
	}
	defer file.Close()

	// sniff from the first 512 bytes, then rewind
	buf := make([]byte, 512)
	n, _ := io.ReadFull(file, buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, apperr.Validation("file could not be read")
	}

	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, filepath.FromSlash(relDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, apperr.Dependency(err, "create upload directory")
	}

	id := uuid.NewString()
	name := fmt.Sprintf("%s_%s%s", id, sanitizeName(fh.Filename), ext)
	absPath := filepath.Join(absDir, name)

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, apperr.Dependency(err, "create file")
	}
	if _, err := io.Copy(dst, file); err != nil {
		_ = dst.Close()
		_ = os.Remove(absPath)
		return nil, apperr.Dependency(err, "write file")
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return nil, apperr.Dependency(err, "write file")
	}

	relPath := path.Join(relDir, name)
	u := &Upload{
		ID:           id,
		UserID:       actor.UserID,
		Purpose:      purpose,
		OriginalName: filepath.Base(fh.Filename),
		FilePath:     relPath,
		FileURL:      s.publicBase + "/" + relPath,
		MimeType:     mimeType,
		Size:         fh.Size,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		_ = os.Remove(absPath)
		return nil, apperr.Dependency(err, "save upload record")
	}

	logger.InfoContext(ctx, "file uploaded", "upload_id", id, "user_id", actor.UserID, "mime_type", mimeType, "size", fh.Size)
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, actor access.Actor, id string) (*Upload, error) {
	if !actor.Authenticated() {
		return nil, access.ErrUnauthenticated
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrUploadNotFound, "load upload")
	}
	return u, nil
}

// Delete removes the record and the file. A file already gone from disk is
// not an error.
func (s *Service) Delete(ctx context.Context, actor access.Actor, id string) error {
	u, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(actor, access.ActionUploadDelete, access.Owned(u.UserID)); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, u); err != nil {
		return apperr.FromRepo(err, ErrUploadNotFound, "delete upload record")
	}
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(u.FilePath))); err != nil && !os.IsNotExist(err) {
		logger.WarnContext(ctx, "failed to remove uploaded file", "upload_id", id, "error", err)
	}
	return nil
}

// ListMine lists the caller's files, optionally narrowed to one purpose.
func (s *Service) ListMine(ctx context.Context, actor access.Actor, purpose Purpose) ([]Upload, error) {
	if !actor.Authenticated() {
		return nil, access.ErrUnauthenticated
	}
	uploads, err := s.repo.ListByUserID(ctx, actor.UserID, purpose)
	if err != nil {
		return nil, apperr.Dependency(err, "list uploads")
	}
	if uploads == nil {
		uploads = []Upload{}
	}
	return uploads, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "_" {
		return "file"
	}
	return name
}
