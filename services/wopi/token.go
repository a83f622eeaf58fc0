package wopi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/t-dias/libreoffice-online-repo/codes"
	"github.com/t-dias/libreoffice-online-repo/keys"
)

// TokenResponse specifies the data returned from the Token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	WOPISrc     string `json:"wopi_src"`
}

// Token issues a WOPI access token scoped to the authenticated user and
// the addressed node. The host page embeds both values in the editor
// frame.
func (s *svc) Token(w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	user := keys.MustGetUser(r.Context())
	nodeID := mux.Vars(r)["node"]

	if _, err := s.nodeController.ExamineNode(r.Context(), nodeID); err != nil {
		s.handleTokenError(err, w, r)
		return
	}

	token, err := s.tokenManager.CreateToken(user, nodeID)
	if err != nil {
		s.handleTokenError(err, w, r)
		return
	}
	log.WithField("user", user.Username).WithField("node", nodeID).Info("access token generated")

	res := &TokenResponse{AccessToken: token, WOPISrc: s.wopiSrc(nodeID)}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.WithError(err).Error("cannot encode")
	}
}

func (s *svc) handleTokenError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	if codeErr, ok := err.(*codes.Err); ok {
		if codeErr.Code == codes.NotFound {
			log.WithError(err).Error("node not found")
			w.WriteHeader(http.StatusNotFound)
			return
		}
	}
	log.WithError(err).Error("cannot generate access token")
	w.WriteHeader(http.StatusInternalServerError)
}
