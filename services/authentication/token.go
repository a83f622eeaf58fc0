package authentication

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/t-dias/libreoffice-online-repo/codes"
	"github.com/t-dias/libreoffice-online-repo/keys"
)

type (
	// TokenRequest specifies the data received by the Token endpoint.
	TokenRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// TokenResponse specifies the data returned from the Token endpoint.
	TokenResponse struct {
		AccessToken string `json:"access_token"`
	}
)

// Token authenticates an user using an username and a password.
func (s *svc) Token(w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())

	if r.Body == nil {
		log.WithError(errors.New("body is nil")).Info("cannot read body")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	authReq := &TokenRequest{}
	if err := json.NewDecoder(r.Body).Decode(authReq); err != nil {
		e := codes.NewErr(codes.BadInputData, "")
		log.WithError(e).Error(codes.BadInputData.String())
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(e); err != nil {
			log.WithError(err).Error("cannot encode")
		}
		return
	}

	token, err := s.authenticationController.Authenticate(authReq.Username, authReq.Password)
	if err != nil {
		s.handleTokenError(err, w, r)
		return
	}
	log.WithField("user", authReq.Username).Info("token generated")

	res := &TokenResponse{AccessToken: token}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.WithError(err).Error("cannot encode")
	}
}

func (s *svc) handleTokenError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	e := codes.NewErr(codes.BadAuthenticationData, "user or password do not match")
	log.WithError(err).Error(codes.BadAuthenticationData.String())
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		log.WithError(err).Error("cannot encode")
	}
}
