package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/atfs-dev/atfs/internal/domain"
	internal_errors "github.com/atfs-dev/atfs/internal/errors"
	"github.com/atfs-dev/atfs/internal/middleware"
	"github.com/atfs-dev/atfs/internal/utils"
)

func fileIdFromPath(r *http.Request) (domain.FileId, error) {
	raw := mux.Vars(r)["file"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return domain.FileId{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid file id", StatusCode: http.StatusBadRequest}
	}
	return id, nil
}

type registerFileRequest struct {
	Title        string `validate:"required" json:"title"`
	Description  string `json:"description"`
	Filename     string `validate:"required" json:"filename"`
	OriginalName string `validate:"required" json:"originalName"`
	MimeType     string `json:"mimeType"`
	SizeBytes    int64  `json:"sizeBytes"`
	Visibility   string `json:"visibility"`
	Kind         string `validate:"required" json:"kind"`
}

// RegisterFile records an uploaded file's metadata. Admin only.
func (h *Handler) RegisterFile(w http.ResponseWriter, r *http.Request) {
	var body registerFileRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	admin := middleware.GetCustomerFromContext(r)
	if admin == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	id, err := h.files.Register(domain.File{
		AdminId:      admin.Id,
		Title:        body.Title,
		Description:  body.Description,
		Filename:     body.Filename,
		OriginalName: body.OriginalName,
		MimeType:     body.MimeType,
		SizeBytes:    body.SizeBytes,
		Visibility:   body.Visibility,
		Kind:         domain.FileKind(body.Kind),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) GetFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.files.List(r.URL.Query().Get("visibility"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, files)
}

func (h *Handler) SearchFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.files.Search(r.URL.Query().Get("q"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, files)
}

func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, err := fileIdFromPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	file, err := h.files.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	history, err := h.share.History(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	file.Shared = history

	utils.WriteJSON(w, http.StatusOK, file)
}

func (h *Handler) FavoriteFile(w http.ResponseWriter, r *http.Request) {
	h.markFile(w, r, h.files.AddFavorite)
}

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	h.markFile(w, r, h.files.AddDownload)
}

func (h *Handler) markFile(w http.ResponseWriter, r *http.Request, mark func(domain.CustomerId, domain.FileId) error) {
	id, err := fileIdFromPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	customer := middleware.GetCustomerFromContext(r)
	if customer == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	if err := mark(customer.Id, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
