package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/service"
)

// --- Mock DocumentService ---

type mockDocumentService struct {
	uploadFn func(ctx context.Context, userID string, up service.Upload) (*models.Document, error)
	listFn   func(ctx context.Context, userID string) ([]models.Document, error)
	openFn   func(ctx context.Context, userID, id string) (*models.Document, io.ReadCloser, error)
	deleteFn func(ctx context.Context, userID, id string) error
}

func (m *mockDocumentService) UploadDocument(ctx context.Context, userID string, up service.Upload) (*models.Document, error) {
	return m.uploadFn(ctx, userID, up)
}
func (m *mockDocumentService) ListDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	return m.listFn(ctx, userID)
}
func (m *mockDocumentService) OpenDocument(ctx context.Context, userID, id string) (*models.Document, io.ReadCloser, error) {
	return m.openFn(ctx, userID, id)
}
func (m *mockDocumentService) DeleteDocument(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

func multipartBody(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// --- Tests ---

func TestUploadDocument_Handler(t *testing.T) {
	var got service.Upload
	var gotBody []byte
	svc := &mockDocumentService{uploadFn: func(ctx context.Context, userID string, up service.Upload) (*models.Document, error) {
		got = up
		var err error
		gotBody, err = io.ReadAll(up.Body)
		require.NoError(t, err)
		return &models.Document{ID: "doc-1", UserID: userID, Name: up.Name, Type: "PDF"}, nil
	}}
	e := newTestEcho(NewDocumentHandler(svc))

	body, contentType := multipartBody(t, "file", "scan.pdf", []byte("%PDF-1.7 test"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "scan.pdf", got.Name)
	assert.Equal(t, int64(13), got.Size)
	assert.Equal(t, "%PDF-1.7 test", string(gotBody))
	assert.Equal(t, "doc-1", decode[models.Document](t, rec).ID)
}

func TestUploadDocument_Handler_MissingFile(t *testing.T) {
	e := newTestEcho(NewDocumentHandler(&mockDocumentService{}))

	body, contentType := multipartBody(t, "attachment", "scan.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndDeleteDocuments_Handler(t *testing.T) {
	svc := &mockDocumentService{
		listFn: func(ctx context.Context, userID string) ([]models.Document, error) {
			return []models.Document{{ID: "doc-2"}, {ID: "doc-1"}}, nil
		},
		deleteFn: func(ctx context.Context, userID, id string) error {
			if id != "doc-1" {
				return service.ErrDocumentNotFound
			}
			return nil
		},
	}
	e := newTestEcho(NewDocumentHandler(svc))

	rec := do(e, http.MethodGet, "/api/v1/documents", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Document](t, rec), 2)

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/api/v1/documents/doc-1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, "/api/v1/documents/doc-9", "").Code)
}

func TestDownloadDocument_Handler(t *testing.T) {
	var gotUser string
	svc := &mockDocumentService{openFn: func(ctx context.Context, userID, id string) (*models.Document, io.ReadCloser, error) {
		gotUser = userID
		if id != "doc-1" {
			return nil, nil, service.ErrDocumentNotFound
		}
		doc := &models.Document{ID: id, UserID: userID, Name: "scan.pdf", ContentType: "application/pdf"}
		return doc, io.NopCloser(strings.NewReader("%PDF-1.7 test")), nil
	}}
	e := newTestEcho(NewDocumentHandler(svc))

	rec := do(e, http.MethodGet, "/api/v1/documents/doc-1/file", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUser, gotUser)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `inline; filename=scan.pdf`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "%PDF-1.7 test", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/v1/documents/doc-2/file", "").Code)
}
