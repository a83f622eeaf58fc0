package authentication

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/t-dias/libreoffice-online-repo/config"
	defaul "github.com/t-dias/libreoffice-online-repo/config/default"
	mock_configsource "github.com/t-dias/libreoffice-online-repo/config/mock"
	"github.com/t-dias/libreoffice-online-repo/keys"
	mock_authenticationcontroller "github.com/t-dias/libreoffice-online-repo/services/authentication/authenticationcontroller/mock"
)

var (
	defaultDirs = defaul.DefaultDirectives
	tokenURL    = "/token"
	pingURL     = "/ping"
)

type testObject struct {
	mockAuthenticationController *mock_authenticationcontroller.AuthenticationController
	mockSource                   *mock_configsource.Source
	service                      *svc
	conf                         *config.Config
}

func newObject(t *testing.T) *testObject {
	mockAuthenticationController := &mock_authenticationcontroller.AuthenticationController{}
	mockSource := &mock_configsource.Source{}
	conf := config.New([]config.Source{mockSource})

	o := &testObject{}
	o.mockSource = mockSource
	o.mockAuthenticationController = mockAuthenticationController
	o.conf = conf

	return o
}

func (o *testObject) loadDirs(t *testing.T, dirs *config.Directives) {
	o.mockSource.On("LoadDirectives").Return(dirs, nil)
	err := o.conf.LoadDirectives()
	require.Nil(t, err)
}

func (o *testObject) setupService(t *testing.T, dirs *config.Directives) {
	o.loadDirs(t, dirs)
	s, err := New(o.conf)
	require.Nil(t, err)
	require.NotNil(t, s)
	svc := s.(*svc)
	svc.authenticationController = o.mockAuthenticationController
	o.service = svc
}

func (o *testObject) wrapRequest(w *httptest.ResponseRecorder, r *http.Request, handler http.Handler) {
	r = r.WithContext(keys.SetLog(r.Context(), logrus.WithField("test", "test")))
	handler.ServeHTTP(w, r)
}

func TestNew(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.loadDirs(t, &dirs)
	_, err := New(o.conf)
	require.Nil(t, err)
}

func TestNew_withBadAuthenticationController(t *testing.T) {
	dirs := defaultDirs
	dirs.Authentication.Type = "fake"
	o := newObject(t)
	o.loadDirs(t, &dirs)
	_, err := New(o.conf)
	require.NotNil(t, err)
}

func TestName(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	require.Equal(t, ServiceName, o.service.Name())
}

func TestBaseURL(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	require.Equal(t, dirs.Authentication.BaseURL, o.service.BaseURL())
}

func TestBaseURL_withEmptyBaseURL(t *testing.T) {
	dirs := defaultDirs
	dirs.Authentication.BaseURL = ""
	o := newObject(t)
	o.setupService(t, &dirs)
	require.Equal(t, "/", o.service.BaseURL())
}

func TestEndpoints(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)
	endpoints := o.service.Endpoints()
	require.NotNil(t, endpoints[tokenURL]["POST"])
	require.NotNil(t, endpoints[pingURL]["GET"])
}

func TestPing(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	r, err := http.NewRequest("GET", pingURL, nil)
	require.Nil(t, err)
	w := httptest.NewRecorder()
	o.wrapRequest(w, r, http.HandlerFunc(o.service.Ping))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())
}
