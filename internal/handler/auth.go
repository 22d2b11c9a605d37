package handler

import (
	"net/http"

	"github.com/atfs-dev/atfs/internal/domain"
	"github.com/atfs-dev/atfs/internal/utils"
)

type credentials struct {
	Login    string `validate:"required" json:"login"`
	Password string `validate:"required" json:"password"`
}

type customerProfile struct {
	Id            domain.CustomerId `json:"id"`
	Email         string            `json:"email"`
	Username      string            `json:"username"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Admin         bool              `json:"admin"`
	ProfilePicURL string            `json:"profilePicUrl"`
}

func profileOf(c domain.Customer) customerProfile {
	return customerProfile{
		Id:            c.Id,
		Email:         c.Email,
		Username:      c.Username,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Admin:         c.Admin,
		ProfilePicURL: c.ProfilePicURL,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := utils.DecodeValidate(r.Body, &creds); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	accessToken, customer, err := h.auth.Login(domain.Credentials{Login: creds.Login, Password: creds.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	cookie := &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    accessToken,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	}
	http.SetCookie(w, cookie)

	utils.WriteJSON(w, http.StatusOK, profileOf(customer))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)

	w.WriteHeader(http.StatusOK)
}

type verifyEmailRequest struct {
	Email string `validate:"required" json:"email"`
}

// VerifyEmail kicks off signup verification. The temp id comes back right
// away; the code arrives by mail.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var body verifyEmailRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	tempId, err := h.auth.VerifyEmail(body.Email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusAccepted, map[string]string{"id": tempId})
}

type signupRequest struct {
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
	TempId   string `validate:"required" json:"tempId"`
	Code     string `validate:"required" json:"code"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if _, err := h.auth.Signup(body.Email, body.Password, body.TempId, body.Code); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("Created. You can login now"))
}
