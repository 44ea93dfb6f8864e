package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"sort"
	"strings"
	"time"

	"hr-portal/internal/blob"
	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

type DocumentService struct {
	store  *store.DocumentStore
	blobs  blob.Store
	now    Clock
	notify Notifier
}

func NewDocumentService(st *store.DocumentStore, blobs blob.Store, now Clock, n Notifier) *DocumentService {
	return &DocumentService{store: st, blobs: blobs, now: now, notify: orNop(n)}
}

// CanUpload reports whether user may attach a file to doc. Companies handle
// company documents for anyone; workers handle everything else on their own rows.
func CanUpload(user model.User, doc model.Document) bool {
	if user.IsCompany() {
		return model.IsCompanyDocument(doc.Type)
	}
	return doc.UserID == user.ID && !model.IsCompanyDocument(doc.Type)
}

func validDocumentType(t model.DocumentType) bool {
	switch t {
	case model.DocumentTypeContract, model.DocumentTypeSignature, model.DocumentTypeRegistration,
		model.DocumentTypeInsurance, model.DocumentTypeWelfare, model.DocumentTypeResume,
		model.DocumentTypeCertificate, model.DocumentTypeHealth, model.DocumentTypeOther:
		return true
	}
	return false
}

// ensureSeeded writes the onboarding checklist the first time the documents
// key is read.
func (s *DocumentService) ensureSeeded(ctx context.Context) error {
	seeded, err := s.store.SeedIfAbsent(ctx, onboardingChecklist)
	if err != nil {
		return fmt.Errorf("seed documents: %w", err)
	}
	if seeded {
		log.Printf("documents: wrote onboarding checklist")
	}
	return nil
}

func (s *DocumentService) UploadDocument(ctx context.Context, userID, userName, title string, docType model.DocumentType, fileName string) (*model.Document, error) {
	if userID == "" || strings.TrimSpace(title) == "" {
		return nil, invalidf("user id and title are required")
	}
	if !validDocumentType(docType) {
		return nil, invalidf("document type %q", docType)
	}
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	now := s.now()
	doc := model.Document{
		ID:           newID("doc", now),
		UserID:       userID,
		UserName:     userName,
		Title:        title,
		Type:         docType,
		FileName:     fileName,
		UploadedAt:   &now,
		Status:       model.DocumentStatusUnregistered,
		ReviewStatus: model.ReviewStatusPending,
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	doc, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc == nil {
		return nil, notFound("document", id)
	}
	return doc, nil
}

// UploadDocumentFile stores the file and marks the document registered.
// Signature documents only take a file through CompleteSignature.
func (s *DocumentService) UploadDocumentFile(ctx context.Context, id, fileName string, content io.Reader, contentType string) (*model.Document, error) {
	return s.attachFile(ctx, id, fileName, content, contentType, model.DocumentStatusRegistered, func(d *model.Document) error {
		if d.Type == model.DocumentTypeSignature {
			return fmt.Errorf("document %s needs a signed copy, use the signature upload: %w", d.ID, ErrInvalidPrecondition)
		}
		return nil
	})
}

// CompleteSignature attaches the signed copy of a signature document that is
// still waiting for a signature.
func (s *DocumentService) CompleteSignature(ctx context.Context, id, fileName string, content io.Reader, contentType string) (*model.Document, error) {
	return s.attachFile(ctx, id, fileName, content, contentType, model.DocumentStatusSignatureCompleted, func(d *model.Document) error {
		if d.Type != model.DocumentTypeSignature || d.Status != model.DocumentStatusBeforeSignature {
			return fmt.Errorf("document %s is %s/%s, not awaiting signature: %w", d.ID, d.Type, d.Status, ErrInvalidPrecondition)
		}
		return nil
	})
}

func (s *DocumentService) attachFile(ctx context.Context, id, fileName string, content io.Reader, contentType string, status model.DocumentStatus, check func(*model.Document) error) (*model.Document, error) {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return nil, invalidf("file name is required")
	}
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if check != nil {
		if err := check(doc); err != nil {
			return nil, err
		}
	}

	key := path.Join("documents", id, name)
	if _, err := s.blobs.Put(ctx, key, content, contentType); err != nil {
		if errors.Is(err, blob.ErrInvalidKey) {
			return nil, invalidf("file name %q", name)
		}
		return nil, fmt.Errorf("store file: %w", err)
	}

	now := s.now()
	var previous string
	updated, err := s.store.Update(ctx, id, func(d *model.Document) error {
		previous = d.BlobKey
		if check != nil {
			if err := check(d); err != nil {
				return err
			}
		}
		d.FileName = name
		d.UploadedAt = &now
		d.RegistrationDate = now.Format(time.DateOnly)
		d.CanDownload = true
		d.Status = status
		d.BlobKey = key
		return nil
	})
	if err != nil || updated == nil {
		if key != previous {
			if derr := s.blobs.Delete(ctx, key); derr != nil {
				log.Printf("ERROR delete orphaned file %s: %v", key, derr)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("update document: %w", err)
		}
		return nil, notFound("document", id)
	}
	if previous != "" && previous != key {
		if err := s.blobs.Delete(ctx, previous); err != nil {
			log.Printf("ERROR delete replaced file %s: %v", previous, err)
		}
	}
	return updated, nil
}

func (s *DocumentService) ReviewDocument(ctx context.Context, id string, status model.ReviewStatus, reviewedBy, note string) (*model.Document, error) {
	switch status {
	case model.ReviewStatusPending, model.ReviewStatusApproved, model.ReviewStatusRejected:
	default:
		return nil, invalidf("review status %q", status)
	}
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	now := s.now()
	doc, err := s.store.Update(ctx, id, func(d *model.Document) error {
		d.ReviewStatus = status
		d.ReviewedBy = reviewedBy
		d.ReviewNote = note
		d.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("review document: %w", err)
	}
	if doc == nil {
		return nil, notFound("document", id)
	}
	msg := fmt.Sprintf("Document **%s** for %s was %s by %s", doc.Title, doc.UserName, status, reviewedBy)
	if note != "" {
		msg += fmt.Sprintf("\n> **Note:** %s", note)
	}
	notify(ctx, s.notify, msg)
	return doc, nil
}

// OpenFile returns the stored bytes of a downloadable document. The caller
// closes the reader.
func (s *DocumentService) OpenFile(ctx context.Context, id string) (*model.Document, io.ReadCloser, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !doc.CanDownload {
		return nil, nil, fmt.Errorf("document %s is not downloadable: %w", id, ErrInvalidPrecondition)
	}
	if doc.BlobKey == "" {
		return nil, nil, fmt.Errorf("document %s has no stored file: %w", id, ErrNotFound)
	}
	_, rc, err := s.blobs.Get(ctx, doc.BlobKey)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, nil, fmt.Errorf("file %s: %w", doc.BlobKey, ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	return doc, rc, nil
}

func (s *DocumentService) UserDocuments(ctx context.Context, userID string) ([]model.Document, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	docs, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user documents: %w", err)
	}
	sortDocumentsNewestFirst(docs)
	return docs, nil
}

func (s *DocumentService) AllDocuments(ctx context.Context) ([]model.Document, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	docs, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("get documents: %w", err)
	}
	sortDocumentsNewestFirst(docs)
	return docs, nil
}

// activityTime is uploadedAt, else registrationDate, else the zero time.
func activityTime(d model.Document) time.Time {
	if d.UploadedAt != nil {
		return *d.UploadedAt
	}
	if d.RegistrationDate != "" {
		if t, err := time.Parse(time.DateOnly, d.RegistrationDate); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sortDocumentsNewestFirst(docs []model.Document) {
	sort.SliceStable(docs, func(i, j int) bool { return activityTime(docs[i]).After(activityTime(docs[j])) })
}

const (
	checklistUserID   = "test01"
	checklistUserName = "김근로"
	checklistDate     = "2024-09-20"
)

func onboardingChecklist() []model.Document {
	row := func(id, title string, t model.DocumentType, status model.DocumentStatus) model.Document {
		d := model.Document{
			ID:       id,
			UserID:   checklistUserID,
			UserName: checklistUserName,
			Title:    title,
			Type:     t,
			Status:   status,
		}
		if status == model.DocumentStatusRegistered || status == model.DocumentStatusSignatureCompleted {
			d.CanDownload = true
			d.RegistrationDate = checklistDate
		}
		return d
	}
	return []model.Document{
		row("doc-001", "근로계약서", model.DocumentTypeContract, model.DocumentStatusRegistered),
		row("doc-002", "전자 서명 동의서", model.DocumentTypeSignature, model.DocumentStatusSignatureCompleted),
		row("doc-003", "재택근무 보안서약서", model.DocumentTypeSignature, model.DocumentStatusSignatureCompleted),
		row("doc-004", "개인정보 활용 동의서", model.DocumentTypeSignature, model.DocumentStatusBeforeSignature),
		row("doc-005", "비밀유지 및 겸업 금지 서약서", model.DocumentTypeSignature, model.DocumentStatusBeforeSignature),
		row("doc-006", "주민등록등본", model.DocumentTypeRegistration, model.DocumentStatusUnregistered),
		row("doc-007", "산재보험자격이력내역서", model.DocumentTypeInsurance, model.DocumentStatusUnregistered),
		row("doc-008", "국민연금가입증명서", model.DocumentTypeInsurance, model.DocumentStatusUnregistered),
		row("doc-009", "중증장애인확인서", model.DocumentTypeWelfare, model.DocumentStatusUnregistered),
		row("doc-010", "건강보험득실확인서", model.DocumentTypeInsurance, model.DocumentStatusUnregistered),
		row("doc-011", "복지카드", model.DocumentTypeWelfare, model.DocumentStatusUnregistered),
		row("doc-012", "고용보험자격이력내역서", model.DocumentTypeInsurance, model.DocumentStatusUnregistered),
	}
}
