package exports

import (
	"bytes"
	"context"
	"time"

	"orderflow_backend/internal/adapters/storage"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/logger"
)

// BoardLister is the merged order list.
type BoardLister interface {
	ListMerged(ctx context.Context, f stage.ListFilter, page, pageSize int) stage.Page
}

// Export is a rendered board. Download is set when the file was uploaded;
// otherwise Content holds the workbook.
type Export struct {
	FileName string
	Rows     int
	Content  []byte
	Download *storage.PresignedURL
}

// Service renders the order board to XLSX.
type Service struct {
	lister  BoardLister
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
	now     func() time.Time
}

// NewService creates the export service. store may be nil, in which case
// exports are always returned inline.
func NewService(lister BoardLister, store storage.StorageService, bucket string, log *logger.Logger) *Service {
	return &Service{lister: lister, storage: store, bucket: bucket, log: log, now: time.Now}
}

// ExportBoard renders every order matching f, ignoring pagination.
func (s *Service) ExportBoard(ctx context.Context, f stage.ListFilter) (Export, error) {
	f.NoPagination = true
	page := s.lister.ListMerged(ctx, f, 1, 0)

	at := s.now()
	content, name, err := renderBoard(page.Items, at)
	if err != nil {
		return Export{}, apperr.Wrap(apperr.KindInternal, "failed to render export", err)
	}

	out := Export{FileName: name, Rows: len(page.Items), Content: content}
	if s.storage == nil {
		return out, nil
	}

	key, err := s.storage.UploadFile(ctx, s.bucket, "board/"+at.UTC().Format(time.DateOnly), name, xlsxType, bytes.NewReader(content), int64(len(content)))
	if err != nil {
		s.log.WithContext(ctx).Warn("export upload failed, returning inline", "error", err)
		return out, nil
	}
	download, err := s.storage.GenerateDownloadURL(ctx, s.bucket, key)
	if err != nil {
		s.log.WithContext(ctx).Warn("export presign failed, returning inline", "key", key, "error", err)
		return out, nil
	}

	out.Content = nil
	out.Download = download
	return out, nil
}
