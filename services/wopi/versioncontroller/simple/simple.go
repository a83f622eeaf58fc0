package simple

import (
	"context"
	"io/ioutil"
	"os"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/t-dias/libreoffice-online-repo/codes"
	"github.com/t-dias/libreoffice-online-repo/config"
	"github.com/t-dias/libreoffice-online-repo/helpers"
	"github.com/t-dias/libreoffice-online-repo/services/wopi/versioncontroller"
)

// initialVersionLabel is the label assigned when version tracking is
// first enabled on a node.
const initialVersionLabel = "1.0"

type controller struct {
	conf *config.Config
	log  *logrus.Entry
	// enabled remembers nodes whose versioning is known to be on, so
	// repeated reads skip the filesystem check.
	enabled *gocache.Cache
}

// New returns a VersionController that stores version labels under the
// versions namespace, keyed by node id.
func New(conf *config.Config) (versioncontroller.VersionController, error) {
	dirs := conf.GetDirectives()
	if err := os.MkdirAll(dirs.WOPI.Simple.VersionsNamespace, 0755); err != nil {
		return nil, err
	}
	return &controller{
		conf:    conf,
		log:     helpers.GetAppLogger(conf).WithField("module", "simple:versioncontroller"),
		enabled: gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// EnsureVersioningEnabled turns on version tracking for a node. It is
// idempotent: once a non-empty label exists the call is a no-op, also
// under concurrent requests for the same node. The label is written to
// a temporary file and renamed into place so a failed write never
// leaves an empty label behind; concurrent initializations rename the
// same initial label, so last writer wins without harm.
func (c *controller) EnsureVersioningEnabled(ctx context.Context, nodeID string) error {
	if _, ok := c.enabled.Get(nodeID); ok {
		return nil
	}

	path := c.getVersionPath(nodeID)
	if finfo, err := os.Stat(path); err == nil && finfo.Size() > 0 {
		c.enabled.Set(nodeID, true, gocache.NoExpiration)
		return nil
	}

	fd, err := ioutil.TempFile(c.conf.GetDirectives().WOPI.Simple.VersionsNamespace, nodeID+"-")
	if err != nil {
		return codes.NewErr(codes.VersioningFailure, err.Error())
	}
	if _, err := fd.Write([]byte(initialVersionLabel)); err != nil {
		fd.Close()
		os.Remove(fd.Name())
		return codes.NewErr(codes.VersioningFailure, err.Error())
	}
	if err := fd.Close(); err != nil {
		os.Remove(fd.Name())
		return codes.NewErr(codes.VersioningFailure, err.Error())
	}
	if err := os.Rename(fd.Name(), path); err != nil {
		os.Remove(fd.Name())
		return codes.NewErr(codes.VersioningFailure, err.Error())
	}

	c.log.WithField("node", nodeID).Info("version tracking enabled")
	c.enabled.Set(nodeID, true, gocache.NoExpiration)
	return nil
}

// VersionLabel returns the current version label of a node. An empty
// label file means initialization never completed and is reported as a
// failure, so callers never serve an empty version.
func (c *controller) VersionLabel(ctx context.Context, nodeID string) (string, error) {
	data, err := ioutil.ReadFile(c.getVersionPath(nodeID))
	if err != nil {
		return "", codes.NewErr(codes.VersioningFailure, err.Error())
	}
	if len(data) == 0 {
		return "", codes.NewErr(codes.VersioningFailure, "version label is empty")
	}
	return string(data), nil
}

func (c *controller) getVersionPath(nodeID string) string {
	return helpers.SecureJoin(c.conf.GetDirectives().WOPI.Simple.VersionsNamespace, nodeID)
}
