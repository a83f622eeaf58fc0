package wopi

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/t-dias/libreoffice-online-repo/codes"
	"github.com/t-dias/libreoffice-online-repo/entities"
)

func TestGetFile(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.mockNodeController.On("ExamineNode").Return(testNodeInfo, nil)
	o.mockNodeController.On("DownloadContent").Return(ioutil.NopCloser(strings.NewReader("spreadsheet content")), nil)

	r, err := http.NewRequest("GET", getFileURL, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, http.HandlerFunc(o.service.GetFile))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "spreadsheet content", w.Body.String())
	require.Equal(t, testNodeInfo.MimeType, w.Header().Get("Content-Type"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.Equal(t, `attachment; filename="budget.ods"`, w.Header().Get("Content-Disposition"))
}

func TestGetFile_withNodeNotFound(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.mockNodeController.On("ExamineNode").Return(&entities.NodeInfo{}, codes.NewErr(codes.NotFound, "node not found"))

	r, err := http.NewRequest("GET", getFileURL, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, http.HandlerFunc(o.service.GetFile))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFile_withDownloadError(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	o.mockNodeController.On("ExamineNode").Return(testNodeInfo, nil)
	o.mockNodeController.On("DownloadContent").Return(ioutil.NopCloser(strings.NewReader("")), codes.NewErr(codes.NotFound, "content is gone"))

	r, err := http.NewRequest("GET", getFileURL, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapAuthenticatedRequest(w, r, testNodeInfo.ID, http.HandlerFunc(o.service.GetFile))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
