package wopi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/t-dias/libreoffice-online-repo/codes"
	"github.com/t-dias/libreoffice-online-repo/entities"
	"github.com/t-dias/libreoffice-online-repo/keys"
	"github.com/t-dias/libreoffice-online-repo/services/wopi/lib"
)

func TestCheckFileInfo(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.mockNodeController.On("ExamineNode").Return(testNodeInfo, nil)
	o.mockVersionController.On("EnsureVersioningEnabled").Return(nil)
	o.mockVersionController.On("VersionLabel").Return("1.0", nil)

	r, err := http.NewRequest("GET", checkFileInfoURL, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, http.HandlerFunc(o.service.CheckFileInfo))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	res := &CheckFileInfoResponse{}
	err = json.NewDecoder(w.Body).Decode(res)
	require.Nil(t, err)
	require.Equal(t, "budget.ods", res.BaseFileName)
	require.Equal(t, testNodeInfo.Size, res.Size)
	require.Equal(t, testNodeInfo.CreatedBy, res.OwnerID)
	require.Equal(t, testUser.Username, res.UserID)
	require.Equal(t, testUser.DisplayName, res.UserFriendlyName)
	require.Equal(t, "1.0", res.Version)
	require.Equal(t, formatWOPITime(testNodeInfo.Modified), res.LastModifiedTime)
	require.Equal(t, dirs.WOPI.PostMessageOrigin, res.PostMessageOrigin)
	require.True(t, res.UserCanWrite)
	require.False(t, res.DisableCopy)
	require.False(t, res.EnableOwnerTermination)

	o.mockVersionController.AssertCalled(t, "EnsureVersioningEnabled")
}

func TestCheckFileInfo_withMissingDisplayName(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.mockNodeController.On("ExamineNode").Return(testNodeInfo, nil)
	o.mockVersionController.On("EnsureVersioningEnabled").Return(nil)
	o.mockVersionController.On("VersionLabel").Return("1.0", nil)

	user := &entities.User{Username: "demo", Email: "demo@example.com"}
	r, err := http.NewRequest("GET", checkFileInfoURL, nil)
	require.Nil(t, err)
	ctx := keys.SetLog(r.Context(), logrus.WithField("test", "test"))
	ctx = keys.SetUser(ctx, user)
	r = mux.SetURLVars(r.WithContext(ctx), map[string]string{"node": testNodeInfo.ID})
	w := httptest.NewRecorder()
	o.service.CheckFileInfo(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	res := &CheckFileInfoResponse{}
	err = json.NewDecoder(w.Body).Decode(res)
	require.Nil(t, err)
	require.Equal(t, user.Username, res.UserFriendlyName)
}

func TestCheckFileInfo_withNodeNotFound(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.mockNodeController.On("ExamineNode").Return(&entities.NodeInfo{}, codes.NewErr(codes.NotFound, "node not found"))

	r, err := http.NewRequest("GET", checkFileInfoURL, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, http.HandlerFunc(o.service.CheckFileInfo))
	require.Equal(t, http.StatusBadRequest, w.Code)

	e := &codes.Err{}
	err = json.NewDecoder(w.Body).Decode(e)
	require.Nil(t, err)
	require.Equal(t, codes.NotFound, e.Code)
}

func TestCheckFileInfo_withVersioningEnableError(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.mockNodeController.On("ExamineNode").Return(testNodeInfo, nil)
	o.mockVersionController.On("EnsureVersioningEnabled").Return(codes.NewErr(codes.VersioningFailure, "cannot enable versioning"))

	r, err := http.NewRequest("GET", checkFileInfoURL, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, http.HandlerFunc(o.service.CheckFileInfo))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckFileInfo_withVersionLabelError(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.mockNodeController.On("ExamineNode").Return(testNodeInfo, nil)
	o.mockVersionController.On("EnsureVersioningEnabled").Return(nil)
	o.mockVersionController.On("VersionLabel").Return("", errors.New("cannot read version label"))

	r, err := http.NewRequest("GET", checkFileInfoURL, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, http.HandlerFunc(o.service.CheckFileInfo))
	require.Equal(t, http.StatusBadRequest, w.Code)

	// a plain error still comes back as a coded body
	e := &codes.Err{}
	err = json.NewDecoder(w.Body).Decode(e)
	require.Nil(t, err)
	require.Equal(t, codes.BadInputData, e.Code)
}

func TestCheckFileInfo_withValidToken(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.mockNodeController.On("ExamineNode").Return(testNodeInfo, nil)
	o.mockVersionController.On("EnsureVersioningEnabled").Return(nil)
	o.mockVersionController.On("VersionLabel").Return("1.0", nil)

	token, err := o.service.tokenManager.CreateToken(testUser, testNodeInfo.ID)
	require.Nil(t, err)

	r, err := http.NewRequest("GET", checkFileInfoURL+"?access_token="+token, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, o.service.tokenHandlerFunc(o.service.CheckFileInfo))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCheckFileInfo_withMissingToken(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	r, err := http.NewRequest("GET", checkFileInfoURL, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, o.service.tokenHandlerFunc(o.service.CheckFileInfo))
	require.Equal(t, http.StatusBadRequest, w.Code)

	e := &codes.Err{}
	err = json.NewDecoder(w.Body).Decode(e)
	require.Nil(t, err)
	require.Equal(t, codes.InvalidToken, e.Code)
}

func TestCheckFileInfo_withTokenForAnotherNode(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	token, err := o.service.tokenManager.CreateToken(testUser, "another-node")
	require.Nil(t, err)

	r, err := http.NewRequest("GET", checkFileInfoURL+"?access_token="+token, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, o.service.tokenHandlerFunc(o.service.CheckFileInfo))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckFileInfo_withExpiredToken(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	expiredManager := lib.NewTokenManager(dirs.Server.JWTSecret, dirs.Server.JWTSigningMethod, -time.Hour)
	token, err := expiredManager.CreateToken(testUser, testNodeInfo.ID)
	require.Nil(t, err)

	r, err := http.NewRequest("GET", checkFileInfoURL+"?access_token="+token, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, o.service.tokenHandlerFunc(o.service.CheckFileInfo))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFormatWOPITime(t *testing.T) {
	require.Equal(t, "1970-01-01T00:00:00.000Z", formatWOPITime(0))
	require.Equal(t, "1970-01-02T00:00:00.123Z", formatWOPITime(86400123))
}

func TestContentSHA256(t *testing.T) {
	sum, err := ContentSHA256(strings.NewReader("hello"))
	require.Nil(t, err)
	require.Equal(t, "LPJNul+wow4m6DsqxbninhsWHlwfp0JecwQzYpOLmCQ=", sum)
}
