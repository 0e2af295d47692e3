package exports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"orderflow_backend/internal/adapters/storage"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeLister struct {
	items []stage.Summary
	got   stage.ListFilter
}

func (f *fakeLister) ListMerged(_ context.Context, filter stage.ListFilter, _, _ int) stage.Page {
	f.got = filter
	return stage.Page{Items: f.items, Total: len(f.items), Page: 1, PageSize: len(f.items), TotalPages: 1}
}

type fakeStorage struct {
	uploadErr error
	bucket    string
	folder    string
	body      []byte
}

func (s *fakeStorage) UploadFile(_ context.Context, bucket, folder, fileName, _ string, r io.Reader, _ int64) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.bucket, s.folder = bucket, folder
	s.body, _ = io.ReadAll(r)
	return folder + "/" + fileName, nil
}

func (s *fakeStorage) GenerateDownloadURL(_ context.Context, _, key string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{URL: "https://minio.local/" + key, FileKey: key, ExpiresAt: time.Unix(0, 0)}, nil
}

func (s *fakeStorage) EnsureBucketExists(context.Context, string) error { return nil }

var exportTime = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func boardItems() []stage.Summary {
	designer := "Lin"
	return []stage.Summary{
		{OrderNumber: "ORD-002", Stage: stage.Production, CustomerName: "Wang", CategoryName: "Cabinet,Glass", CompositeStatus: "production-in production", CreatedAt: exportTime},
		{OrderNumber: "ORD-001", Stage: stage.Design, CustomerName: "Zhang", Designer: &designer, CompositeStatus: "design-measuring", CreatedAt: exportTime},
	}
}

func newTestService(lister BoardLister, store storage.StorageService) *Service {
	svc := NewService(lister, store, "order-exports", logger.Nop())
	svc.now = func() time.Time { return exportTime }
	return svc
}

func readRows(t *testing.T, content []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(boardSheet)
	require.NoError(t, err)
	return rows
}

func TestExportBoardInline(t *testing.T) {
	lister := &fakeLister{items: boardItems()}
	out, err := newTestService(lister, nil).ExportBoard(context.Background(), stage.ListFilter{Stage: stage.Design})
	require.NoError(t, err)

	assert.True(t, lister.got.NoPagination, "exports ignore pagination")
	assert.Equal(t, stage.Design, lister.got.Stage)
	assert.Equal(t, "orders_20240310_093000.xlsx", out.FileName)
	assert.Equal(t, 2, out.Rows)
	assert.Nil(t, out.Download)

	rows := readRows(t, out.Content)
	require.Len(t, rows, 3)
	assert.Equal(t, boardHeaders, rows[0])
	assert.Equal(t, "ORD-002", rows[1][0])
	assert.Equal(t, "production", rows[1][1])
	assert.Equal(t, "production-in production", rows[1][10])
	assert.Equal(t, "Lin", rows[2][4])
}

func TestExportBoardUploads(t *testing.T) {
	store := &fakeStorage{}
	out, err := newTestService(&fakeLister{items: boardItems()}, store).ExportBoard(context.Background(), stage.ListFilter{})
	require.NoError(t, err)

	require.NotNil(t, out.Download)
	assert.Nil(t, out.Content)
	assert.Equal(t, "order-exports", store.bucket)
	assert.Equal(t, "board/2024-03-10", store.folder)
	assert.Equal(t, "https://minio.local/board/2024-03-10/orders_20240310_093000.xlsx", out.Download.URL)
	assert.Len(t, readRows(t, store.body), 3)
}

func TestExportBoardFallsBackInlineOnUploadFailure(t *testing.T) {
	store := &fakeStorage{uploadErr: errors.New("minio down")}
	out, err := newTestService(&fakeLister{items: boardItems()}, store).ExportBoard(context.Background(), stage.ListFilter{})
	require.NoError(t, err)

	assert.Nil(t, out.Download)
	assert.NotEmpty(t, out.Content)
}

func TestExportEmptyBoardHasHeaderOnly(t *testing.T) {
	out, err := newTestService(&fakeLister{}, nil).ExportBoard(context.Background(), stage.ListFilter{})
	require.NoError(t, err)

	rows := readRows(t, out.Content)
	require.Len(t, rows, 1)
	assert.Zero(t, out.Rows)
}
