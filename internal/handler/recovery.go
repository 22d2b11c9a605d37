package handler

import (
	"net/http"

	"github.com/atfs-dev/atfs/internal/utils"
)

type recoveryRequest struct {
	Email string `validate:"required" json:"email"`
}

// RequestRecovery starts password recovery for an existing account.
func (h *Handler) RequestRecovery(w http.ResponseWriter, r *http.Request) {
	var body recoveryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	tempId, err := h.recovery.RequestReset(body.Email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusAccepted, map[string]string{"id": tempId})
}

type resetPasswordRequest struct {
	Email       string `validate:"required" json:"email"`
	TempId      string `validate:"required" json:"tempId"`
	Code        string `validate:"required" json:"code"`
	NewPassword string `validate:"required" json:"newPassword"`
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body resetPasswordRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.recovery.ResetPassword(body.Email, body.TempId, body.Code, body.NewPassword); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Password updated"))
}
