package handler

import (
	"net/http"

	"github.com/atfs-dev/atfs/internal/domain"
	"github.com/atfs-dev/atfs/internal/middleware"
	"github.com/atfs-dev/atfs/internal/utils"
)

type shareRequest struct {
	Recipients []string `validate:"required,min=1" json:"recipients"`
	Message    string   `json:"message"`
}

type shareResponse struct {
	Message           string   `json:"message"`
	InvalidRecipients []string `json:"invalidRecipientEmails,omitempty"`
}

// ShareFile accepts a share request and answers before delivery happens.
// 202 means the attempt is recorded, not that any mail went out.
func (h *Handler) ShareFile(w http.ResponseWriter, r *http.Request) {
	fileId, err := fileIdFromPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body shareRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	customer := middleware.GetCustomerFromContext(r)
	if customer == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	ack, err := h.share.Share(domain.ShareRequest{
		FileId:     fileId,
		From:       customer.Id,
		Recipients: body.Recipients,
		Message:    body.Message,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusAccepted, shareResponse{
		Message:           "Delivery scheduled",
		InvalidRecipients: ack.InvalidRecipients,
	})
}
