package simple

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"mime"
	"os"
	"path/filepath"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/t-dias/libreoffice-online-repo/codes"
	"github.com/t-dias/libreoffice-online-repo/config"
	"github.com/t-dias/libreoffice-online-repo/entities"
	"github.com/t-dias/libreoffice-online-repo/helpers"
	"github.com/t-dias/libreoffice-online-repo/services/wopi/nodecontroller"
)

const defaultMimeType = "application/octet-stream"

// nodeRecord is the sidecar metadata stored next to the content namespace.
type nodeRecord struct {
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	MimeType  string `json:"mime_type"`
}

type controller struct {
	conf *config.Config
	log  *logrus.Entry
}

// New returns a NodeController backed by the local filesystem: content
// lives under the namespace directory and node metadata under the
// metadata namespace, keyed by node id.
func New(conf *config.Config) (nodecontroller.NodeController, error) {
	dirs := conf.GetDirectives()
	if err := os.MkdirAll(dirs.WOPI.Simple.Namespace, 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dirs.WOPI.Simple.MetaDataNamespace, 0755); err != nil {
		return nil, err
	}
	return &controller{
		conf: conf,
		log:  helpers.GetAppLogger(conf).WithField("module", "simple:nodecontroller"),
	}, nil
}

func (c *controller) ExamineNode(ctx context.Context, nodeID string) (*entities.NodeInfo, error) {
	rec, err := c.getNodeRecord(nodeID)
	if err != nil {
		return nil, err
	}

	finfo, err := os.Stat(c.getContentPath(nodeID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, codes.NewErr(codes.NotFound, err.Error())
		}
		return nil, err
	}

	mimeType := rec.MimeType
	if mimeType == "" {
		mimeType = guessMimeType(rec.Name)
	}

	return &entities.NodeInfo{
		ID:        nodeID,
		Name:      rec.Name,
		Size:      finfo.Size(),
		MimeType:  mimeType,
		CreatedBy: rec.CreatedBy,
		Modified:  finfo.ModTime().UnixMilli(),
	}, nil
}

func (c *controller) DownloadContent(ctx context.Context, nodeID string) (io.ReadCloser, error) {
	if _, err := c.getNodeRecord(nodeID); err != nil {
		return nil, err
	}
	fd, err := os.Open(c.getContentPath(nodeID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, codes.NewErr(codes.NotFound, err.Error())
		}
		return nil, err
	}
	return fd, nil
}

// CreateNode stores a new node in the namespace and returns its metadata.
// The repository proper owns node creation; this entry point exists so
// deployments backed by the simple store can be seeded.
func (c *controller) CreateNode(ctx context.Context, user *entities.User, name string, r io.Reader) (*entities.NodeInfo, error) {
	nodeID := uuid.NewV4().String()

	fd, err := os.Create(c.getContentPath(nodeID))
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	if _, err := io.Copy(fd, r); err != nil {
		return nil, err
	}

	rec := &nodeRecord{Name: name, CreatedBy: user.Username, MimeType: guessMimeType(name)}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if err := ioutil.WriteFile(c.getMetaDataPath(nodeID), data, 0644); err != nil {
		return nil, err
	}

	c.log.WithField("node", nodeID).WithField("name", name).Info("node created")
	return c.ExamineNode(ctx, nodeID)
}

func (c *controller) getNodeRecord(nodeID string) (*nodeRecord, error) {
	data, err := ioutil.ReadFile(c.getMetaDataPath(nodeID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, codes.NewErr(codes.NotFound, err.Error())
		}
		return nil, err
	}
	rec := &nodeRecord{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *controller) getContentPath(nodeID string) string {
	return helpers.SecureJoin(c.conf.GetDirectives().WOPI.Simple.Namespace, nodeID)
}

func (c *controller) getMetaDataPath(nodeID string) string {
	return helpers.SecureJoin(c.conf.GetDirectives().WOPI.Simple.MetaDataNamespace, nodeID+".json")
}

func guessMimeType(name string) string {
	inferred := mime.TypeByExtension(filepath.Ext(name))
	if inferred == "" {
		inferred = defaultMimeType
	}
	return inferred
}
