package wopi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/t-dias/libreoffice-online-repo/keys"
)

// GetFile streams the current content of a node to the editor.
func (s *svc) GetFile(w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	nodeID := mux.Vars(r)["node"]

	ninfo, err := s.nodeController.ExamineNode(r.Context(), nodeID)
	if err != nil {
		s.handleWOPIError(err, w, r)
		return
	}

	reader, err := s.nodeController.DownloadContent(r.Context(), nodeID)
	if err != nil {
		s.handleWOPIError(err, w, r)
		return
	}
	defer reader.Close()

	w.Header().Add("X-Content-Type-Options", "nosniff")
	w.Header().Add("Content-Type", ninfo.MimeType)
	w.Header().Add("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ninfo.Name))
	if _, err := io.Copy(w, reader); err != nil {
		log.WithError(err).Error("cannot write response body")
	}
}
