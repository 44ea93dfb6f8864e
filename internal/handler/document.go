package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"hr-portal/internal/model"
	"hr-portal/internal/pagination"
	"hr-portal/internal/service"
)

// maxUploadSize bounds a single multipart document upload.
const maxUploadSize = 20 << 20

type DocumentHandler struct {
	svc  *service.DocumentService
	auth *Auth
}

func NewDocumentHandler(svc *service.DocumentService, auth *Auth) *DocumentHandler {
	return &DocumentHandler{svc: svc, auth: auth}
}

func (h *DocumentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/documents", h.auth.Require(h.HandleMine))
	mux.HandleFunc("POST /api/documents", h.auth.Require(h.HandleCreate))
	mux.HandleFunc("POST /api/documents/{id}/file", h.auth.Require(h.HandleUploadFile))
	mux.HandleFunc("POST /api/documents/{id}/signature", h.auth.Require(h.HandleSignature))
	mux.HandleFunc("GET /api/documents/{id}/download", h.auth.Require(h.HandleDownload))

	mux.HandleFunc("GET /api/company/documents", h.auth.RequireRole(model.RoleCompany, h.HandleAll))
	mux.HandleFunc("POST /api/company/documents/{id}/review", h.auth.RequireRole(model.RoleCompany, h.HandleReview))
}

func (h *DocumentHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.UserDocuments(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, docs)
}

func (h *DocumentHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.AllDocuments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, pagination.Paginate(docs, queryInt(r, "page", 1), queryInt(r, "perPage", pagination.DefaultPerPage)))
}

type createDocumentRequest struct {
	UserID   string             `json:"userId"`
	UserName string             `json:"userName"`
	Title    string             `json:"title" validate:"required"`
	Type     model.DocumentType `json:"type" validate:"required"`
	FileName string             `json:"fileName"`
}

// HandleCreate registers a document row. Company users may create rows on a
// worker's behalf; workers always create their own.
func (h *DocumentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user := currentUser(r)
	ownerID, ownerName := user.ID, user.Name
	if user.IsCompany() && req.UserID != "" {
		ownerID, ownerName = req.UserID, req.UserName
	}
	doc, err := h.svc.UploadDocument(r.Context(), ownerID, ownerName, req.Title, req.Type, req.FileName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, doc)
}

type attachFunc func(r *http.Request, id, fileName string, content io.Reader, contentType string) (*model.Document, error)

// receiveFile reads the "file" part of a multipart upload and hands it to attach.
func (h *DocumentHandler) receiveFile(w http.ResponseWriter, r *http.Request, allowed func(model.User, model.Document) bool, attach attachFunc) {
	id := r.PathValue("id")
	doc, err := h.svc.GetDocument(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !allowed(currentUser(r), *doc) {
		writeError(w, r, service.ErrForbidden)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, fmt.Errorf("parse upload: %v: %w", err, service.ErrInvalidArgument))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("file part: %v: %w", err, service.ErrInvalidArgument))
		return
	}
	defer file.Close()
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	updated, err := attach(r, id, header.Filename, file, contentType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, updated)
}

func (h *DocumentHandler) HandleUploadFile(w http.ResponseWriter, r *http.Request) {
	h.receiveFile(w, r, service.CanUpload, func(r *http.Request, id, name string, c io.Reader, ct string) (*model.Document, error) {
		return h.svc.UploadDocumentFile(r.Context(), id, name, c, ct)
	})
}

// canSign lets the document owner or any company user return a signed copy.
func canSign(user model.User, doc model.Document) bool {
	return user.IsCompany() || doc.UserID == user.ID
}

func (h *DocumentHandler) HandleSignature(w http.ResponseWriter, r *http.Request) {
	h.receiveFile(w, r, canSign, func(r *http.Request, id, name string, c io.Reader, ct string) (*model.Document, error) {
		return h.svc.CompleteSignature(r.Context(), id, name, c, ct)
	})
}

func (h *DocumentHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id := r.PathValue("id")
	owned, err := h.svc.GetDocument(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !user.IsCompany() && owned.UserID != user.ID {
		writeError(w, r, service.ErrForbidden)
		return
	}
	doc, rc, err := h.svc.OpenFile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("ERROR streaming document %s: %v", doc.ID, err)
	}
}

type reviewDocumentRequest struct {
	Status model.ReviewStatus `json:"status" validate:"required,oneof=approved rejected"`
	Note   string             `json:"note"`
}

func (h *DocumentHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := h.svc.ReviewDocument(r.Context(), r.PathValue("id"), req.Status, currentUser(r).Name, req.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, doc)
}
