package wopi

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/t-dias/libreoffice-online-repo/codes"
	"github.com/t-dias/libreoffice-online-repo/keys"
)

// CheckFileInfoResponse is the WOPI CheckFileInfo payload. Field names
// are fixed by the protocol.
type CheckFileInfoResponse struct {
	// BaseFileName must keep the file extension or the editor opens
	// the document read-only.
	BaseFileName           string `json:"BaseFileName"`
	Size                   int64  `json:"Size"`
	OwnerID                string `json:"OwnerId"`
	UserID                 string `json:"UserId"`
	UserFriendlyName       string `json:"UserFriendlyName"`
	Version                string `json:"Version"`
	LastModifiedTime       string `json:"LastModifiedTime"`
	PostMessageOrigin      string `json:"PostMessageOrigin"`
	UserCanWrite           bool   `json:"UserCanWrite"`
	DisableCopy            bool   `json:"DisableCopy"`
	DisablePrint           bool   `json:"DisablePrint"`
	DisableExport          bool   `json:"DisableExport"`
	HideExportOption       bool   `json:"HideExportOption"`
	HideSaveOption         bool   `json:"HideSaveOption"`
	HidePrintOption        bool   `json:"HidePrintOption"`
	EnableOwnerTermination bool   `json:"EnableOwnerTermination"`
}

// CheckFileInfo returns the metadata of a node so the editor can render
// it. The identity comes from the validated access token on the request
// context, never from any ambient state.
func (s *svc) CheckFileInfo(w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	user := keys.MustGetUser(r.Context())
	nodeID := mux.Vars(r)["node"]

	ninfo, err := s.nodeController.ExamineNode(r.Context(), nodeID)
	if err != nil {
		s.handleWOPIError(err, w, r)
		return
	}

	// Version tracking is enabled on first read; the call is idempotent
	// so it runs unconditionally before the label is read.
	if err := s.versionController.EnsureVersioningEnabled(r.Context(), nodeID); err != nil {
		s.handleWOPIError(err, w, r)
		return
	}
	version, err := s.versionController.VersionLabel(r.Context(), nodeID)
	if err != nil {
		s.handleWOPIError(err, w, r)
		return
	}

	dirs := s.conf.GetDirectives()
	perms := dirs.WOPI.Permissions

	friendlyName := user.DisplayName
	if friendlyName == "" {
		friendlyName = user.Username
	}

	res := &CheckFileInfoResponse{
		BaseFileName:           ninfo.Name,
		Size:                   ninfo.Size,
		OwnerID:                ninfo.CreatedBy,
		UserID:                 user.Username,
		UserFriendlyName:       friendlyName,
		Version:                version,
		LastModifiedTime:       formatWOPITime(ninfo.Modified),
		PostMessageOrigin:      dirs.WOPI.PostMessageOrigin,
		UserCanWrite:           perms.UserCanWrite,
		DisableCopy:            perms.DisableCopy,
		DisablePrint:           perms.DisablePrint,
		DisableExport:          perms.DisableExport,
		HideExportOption:       perms.HideExportOption,
		HideSaveOption:         perms.HideSaveOption,
		HidePrintOption:        perms.HidePrintOption,
		EnableOwnerTermination: perms.EnableOwnerTermination,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.WithError(err).Error("cannot encode")
	}
}

// handleWOPIError collapses every failure into one generic bad request.
// The editor only inspects the status code; the body carries the cause.
func (s *svc) handleWOPIError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	log.WithError(err).Error("cannot serve wopi request")

	e, ok := err.(*codes.Err)
	if !ok {
		e = codes.NewErr(codes.BadInputData, err.Error())
	}
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		log.WithError(err).Error("cannot encode")
	}
}

// tokenHandlerFunc authenticates WOPI requests with the access token
// they carry and puts the token identity on the request context.
func (s *svc) tokenHandlerFunc(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := s.tokenManager.ResolveRequest(r)
		if err != nil {
			s.handleWOPIError(codes.NewErr(codes.InvalidToken, err.Error()), w, r)
			return
		}
		ctx := keys.SetUser(r.Context(), info.User)
		ctx = keys.SetAccessToken(ctx, s.tokenManager.GetTokenFromRequest(r))
		handler(w, r.WithContext(ctx))
	}
}

// formatWOPITime renders a millisecond epoch instant as ISO-8601 UTC
// keeping millisecond precision.
func formatWOPITime(millis int64) string {
	return time.UnixMilli(millis).UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// ContentSHA256 returns the base64 encoded SHA-256 of the content.
// The protocol stopped requiring the hash; it stays here in case the
// editor asks for it again.
func ContentSHA256(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}
