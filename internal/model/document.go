package model

import "time"

type DocumentType string

const (
	DocumentTypeContract     DocumentType = "contract"
	DocumentTypeSignature    DocumentType = "signature"
	DocumentTypeRegistration DocumentType = "registration"
	DocumentTypeInsurance    DocumentType = "insurance"
	DocumentTypeWelfare      DocumentType = "welfare"
	DocumentTypeResume       DocumentType = "resume"
	DocumentTypeCertificate  DocumentType = "certificate"
	DocumentTypeHealth       DocumentType = "health"
	DocumentTypeOther        DocumentType = "other"
)

// DocumentStatus tracks the registration / signature lifecycle.
type DocumentStatus string

const (
	DocumentStatusUnregistered       DocumentStatus = "unregistered"
	DocumentStatusBeforeSignature    DocumentStatus = "before_signature"
	DocumentStatusSignatureCompleted DocumentStatus = "signature_completed"
	DocumentStatusRegistered         DocumentStatus = "registered"
)

// ReviewStatus tracks a company reviewer's decision on an uploaded file.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

const DocumentsKey = "documents"

type Document struct {
	ID               string         `json:"id"`
	UserID           string         `json:"userId"`
	UserName         string         `json:"userName"`
	Title            string         `json:"title"`
	Type             DocumentType   `json:"type"`
	FileName         string         `json:"fileName,omitempty"`
	UploadedAt       *time.Time     `json:"uploadedAt,omitempty"`
	Status           DocumentStatus `json:"status"`
	ReviewStatus     ReviewStatus   `json:"reviewStatus,omitempty"`
	ReviewedBy       string         `json:"reviewedBy,omitempty"`
	ReviewNote       string         `json:"reviewNote,omitempty"`
	ReviewedAt       *time.Time     `json:"reviewedAt,omitempty"`
	CanDownload      bool           `json:"canDownload,omitempty"`
	RegistrationDate string         `json:"registrationDate,omitempty"` // YYYY-MM-DD
	BlobKey          string         `json:"blobKey,omitempty"`
}

// IsCompanyDocument reports whether the company must prepare or countersign
// documents of this type on the worker's behalf.
func IsCompanyDocument(t DocumentType) bool {
	return t == DocumentTypeContract || t == DocumentTypeSignature
}

// IsWorkerDocument reports whether the worker must obtain documents of this
// type from an outside institution and upload them.
func IsWorkerDocument(t DocumentType) bool {
	switch t {
	case DocumentTypeRegistration, DocumentTypeInsurance, DocumentTypeWelfare:
		return true
	}
	return false
}
