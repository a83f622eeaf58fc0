package simple

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/t-dias/libreoffice-online-repo/codes"
	"github.com/t-dias/libreoffice-online-repo/config"
	defaul "github.com/t-dias/libreoffice-online-repo/config/default"
	mock_configsource "github.com/t-dias/libreoffice-online-repo/config/mock"
)

func newController(t *testing.T) *controller {
	dirs := defaul.DefaultDirectives
	dirs.WOPI.Simple.VersionsNamespace = t.TempDir()
	dirs.Server.AppLog = ""

	mockSource := &mock_configsource.Source{}
	conf := config.New([]config.Source{mockSource})
	mockSource.On("LoadDirectives").Return(&dirs, nil)
	err := conf.LoadDirectives()
	require.Nil(t, err)

	c, err := New(conf)
	require.Nil(t, err)
	return c.(*controller)
}

func TestEnsureVersioningEnabled(t *testing.T) {
	c := newController(t)

	err := c.EnsureVersioningEnabled(context.Background(), "node-1")
	require.Nil(t, err)

	label, err := c.VersionLabel(context.Background(), "node-1")
	require.Nil(t, err)
	require.Equal(t, initialVersionLabel, label)
}

func TestEnsureVersioningEnabled_isIdempotent(t *testing.T) {
	c := newController(t)

	err := c.EnsureVersioningEnabled(context.Background(), "node-1")
	require.Nil(t, err)
	first, err := c.VersionLabel(context.Background(), "node-1")
	require.Nil(t, err)

	err = c.EnsureVersioningEnabled(context.Background(), "node-1")
	require.Nil(t, err)
	second, err := c.VersionLabel(context.Background(), "node-1")
	require.Nil(t, err)
	require.Equal(t, first, second)
}

func TestEnsureVersioningEnabled_withExistingLabel(t *testing.T) {
	c := newController(t)

	err := os.WriteFile(c.getVersionPath("node-1"), []byte("2.3"), 0644)
	require.Nil(t, err)

	err = c.EnsureVersioningEnabled(context.Background(), "node-1")
	require.Nil(t, err)

	label, err := c.VersionLabel(context.Background(), "node-1")
	require.Nil(t, err)
	require.Equal(t, "2.3", label)
}

func TestEnsureVersioningEnabled_withEmptyLabel(t *testing.T) {
	c := newController(t)

	// an empty label file is what a torn initialization leaves behind
	err := os.WriteFile(c.getVersionPath("node-1"), []byte{}, 0644)
	require.Nil(t, err)

	err = c.EnsureVersioningEnabled(context.Background(), "node-1")
	require.Nil(t, err)

	label, err := c.VersionLabel(context.Background(), "node-1")
	require.Nil(t, err)
	require.Equal(t, initialVersionLabel, label)
}

func TestVersionLabel_withEmptyLabel(t *testing.T) {
	c := newController(t)

	err := os.WriteFile(c.getVersionPath("node-1"), []byte{}, 0644)
	require.Nil(t, err)

	_, err = c.VersionLabel(context.Background(), "node-1")
	require.NotNil(t, err)
	codeErr, ok := err.(*codes.Err)
	require.True(t, ok)
	require.Equal(t, codes.VersioningFailure, codeErr.Code)
}

func TestVersionLabel_withoutVersioning(t *testing.T) {
	c := newController(t)

	_, err := c.VersionLabel(context.Background(), "node-1")
	require.NotNil(t, err)
	codeErr, ok := err.(*codes.Err)
	require.True(t, ok)
	require.Equal(t, codes.VersioningFailure, codeErr.Code)
}
