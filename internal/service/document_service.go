package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/repository"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/storage"
)

var (
	ErrDocumentNotFound    = apperr.NotFound("document not found")
	ErrEmptyDocument       = apperr.Validation("document is empty")
	ErrUnsupportedDocument = apperr.Validation("supported formats: PDF, JPG, JPEG, PNG, DOC, DOCX")
)

var documentTypes = []string{"PDF", "JPG", "JPEG", "PNG", "DOC", "DOCX"}

// Upload is a file received from the client.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DocumentFileURL is the authenticated route that serves a document's file.
func DocumentFileURL(id string) string {
	return "/api/v1/documents/" + id + "/file"
}

type DocumentService interface {
	UploadDocument(ctx context.Context, userID string, up Upload) (*models.Document, error)
	ListDocuments(ctx context.Context, userID string) ([]models.Document, error)
	OpenDocument(ctx context.Context, userID, id string) (*models.Document, io.ReadCloser, error)
	DeleteDocument(ctx context.Context, userID, id string) error
}

type documentService struct {
	repo     repository.DocumentRepository
	store    storage.ObjectStore
	maxBytes int64
	log      *zap.Logger
}

func NewDocumentService(repo repository.DocumentRepository, store storage.ObjectStore, maxBytes int64, log *zap.Logger) DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &documentService{repo: repo, store: store, maxBytes: maxBytes, log: log}
}

func (s *documentService) UploadDocument(ctx context.Context, userID string, up Upload) (*models.Document, error) {
	if up.Size <= 0 {
		return nil, ErrEmptyDocument
	}
	if up.Size > s.maxBytes {
		return nil, apperr.Validationf("document exceeds %s", HumanSize(s.maxBytes))
	}
	docType := DocumentType(up.Name)
	if !slices.Contains(documentTypes, docType) {
		return nil, ErrUnsupportedDocument
	}

	id := uuid.NewString()
	key := fmt.Sprintf("documents/%s/%s%s", userID, id, strings.ToLower(filepath.Ext(up.Name)))
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.store.Upload(ctx, key, up.Body, contentType, up.Size); err != nil {
		return nil, apperr.Remote("store document", err)
	}

	doc := &models.Document{
		ID:          id,
		UserID:      userID,
		Name:        filepath.Base(up.Name),
		Type:        docType,
		SizeBytes:   up.Size,
		Size:        HumanSize(up.Size),
		ContentType: contentType,
		ObjectKey:   key,
		URL:         DocumentFileURL(id),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		if derr := s.store.Delete(ctx, key); derr != nil {
			s.log.Warn("remove orphaned document object failed", zap.String("key", key), zap.Error(derr))
		}
		return nil, apperr.Remote("save document", err)
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	docs, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Remote("list documents", err)
	}
	return docs, nil
}

// owned returns the document only when userID owns it.
func (s *documentService) owned(ctx context.Context, userID, id string) (*models.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, apperr.Remote("get document", err)
	}
	if doc.UserID != userID {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// OpenDocument returns the owner's document with its file. The caller closes
// the reader.
func (s *documentService) OpenDocument(ctx context.Context, userID, id string) (*models.Document, io.ReadCloser, error) {
	doc, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, doc.ObjectKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		s.log.Warn("document row without object", zap.String("document_id", id), zap.String("key", doc.ObjectKey))
		return nil, nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, nil, apperr.Remote("open document", err)
	}
	return doc, rc, nil
}

// DeleteDocument removes the stored object first, then the metadata row.
func (s *documentService) DeleteDocument(ctx context.Context, userID, id string) error {
	doc, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, doc.ObjectKey); err != nil {
		return apperr.Remote("delete document object", err)
	}
	if err := s.repo.Delete(ctx, doc.ID); err != nil {
		return apperr.Remote("delete document", err)
	}
	return nil
}

// DocumentType is the upper-cased file extension, or UNKNOWN.
func DocumentType(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(ext)
}

// HumanSize formats a byte count as KB, switching to MB above 1024 KB.
func HumanSize(n int64) string {
	kb := float64(n) / 1024
	if kb > 1024 {
		return fmt.Sprintf("%.2f MB", kb/1024)
	}
	return fmt.Sprintf("%.2f KB", kb)
}
