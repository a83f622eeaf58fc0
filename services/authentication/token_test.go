package authentication

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	o.mockAuthenticationController.On("Authenticate").Return("testtoken", nil)

	body := strings.NewReader(`{"username":"demo", "password":"demo"}`)
	r, err := http.NewRequest("POST", tokenURL, body)
	require.Nil(t, err)

	w := httptest.NewRecorder()
	o.wrapRequest(w, r, http.HandlerFunc(o.service.Token))
	require.Equal(t, http.StatusOK, w.Code)

	authNRes := &TokenResponse{}
	err = json.NewDecoder(w.Body).Decode(authNRes)
	require.Nil(t, err)
	require.Equal(t, "testtoken", authNRes.AccessToken)
}

func TestToken_withInvalidJSON(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	o.mockAuthenticationController.On("Authenticate").Return("testtoken", nil)

	body := strings.NewReader("")
	r, err := http.NewRequest("POST", tokenURL, body)
	require.Nil(t, err)

	w := httptest.NewRecorder()
	o.wrapRequest(w, r, http.HandlerFunc(o.service.Token))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToken_withAuthenticationControllerError(t *testing.T) {
	dirs := defaultDirs
	o := newObject(t)
	o.setupService(t, &dirs)

	o.mockAuthenticationController.On("Authenticate").Return("", errors.New("user not found"))

	body := strings.NewReader(`{"username":"demo", "password":"demo"}`)
	r, err := http.NewRequest("POST", tokenURL, body)
	require.Nil(t, err)

	w := httptest.NewRecorder()
	o.wrapRequest(w, r, http.HandlerFunc(o.service.Token))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
