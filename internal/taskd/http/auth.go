package http

import (
	"encoding/json"
	"net/http"

	"github.com/taskdhq/taskd/internal/taskd/service"
	"github.com/taskdhq/taskd/pkg/httpx"
)

const (
	minUsernameLen = 4
	maxUsernameLen = 20
	minPasswordLen = 8
	maxPasswordLen = 64
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// validate performs the schema checks the services assume have already
// happened: non-empty, bounded length.
func (c credentialsRequest) validate() string {
	if len(c.Username) < minUsernameLen || len(c.Username) > maxUsernameLen {
		return "username must be between 4 and 20 characters"
	}
	if len(c.Password) < minPasswordLen || len(c.Password) > maxPasswordLen {
		return "password must be between 8 and 64 characters"
	}
	return ""
}

type SignupHandler struct {
	Auth *service.AuthService
}

// ServeHTTP handles POST /v1/auth/signup.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	if err := h.Auth.SignUp(r.Context(), req.Username, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type SigninHandler struct {
	Auth *service.AuthService
}

type signinResponse struct {
	AccessToken string `json:"accessToken"`
}

// ServeHTTP handles POST /v1/auth/signin.
func (h *SigninHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		// Same shape as a failed login so probing requests learn nothing
		// about which usernames are registered.
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", service.ErrInvalidCredentials.Error())
		return
	}

	token, _, err := h.Auth.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, signinResponse{AccessToken: token})
}
