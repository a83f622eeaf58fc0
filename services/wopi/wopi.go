package wopi

import (
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/t-dias/libreoffice-online-repo/config"
	"github.com/t-dias/libreoffice-online-repo/services"
	authlib "github.com/t-dias/libreoffice-online-repo/services/authentication/lib"
	"github.com/t-dias/libreoffice-online-repo/services/wopi/lib"
	"github.com/t-dias/libreoffice-online-repo/services/wopi/nodecontroller"
	nodesimple "github.com/t-dias/libreoffice-online-repo/services/wopi/nodecontroller/simple"
	"github.com/t-dias/libreoffice-online-repo/services/wopi/versioncontroller"
	versionsimple "github.com/t-dias/libreoffice-online-repo/services/wopi/versioncontroller/simple"
)

// ServiceName identifies this service.
const ServiceName string = "wopi"

type svc struct {
	conf              *config.Config
	tokenManager      *lib.TokenManager
	nodeController    nodecontroller.NodeController
	versionController versioncontroller.VersionController
}

// New returns a new Service.
func New(conf *config.Config) (services.Service, error) {
	nodeController, err := GetNodeController(conf)
	if err != nil {
		return nil, err
	}
	versionController, err := GetVersionController(conf)
	if err != nil {
		return nil, err
	}

	dirs := conf.GetDirectives()
	tokenManager := lib.NewTokenManager(dirs.Server.JWTSecret, dirs.Server.JWTSigningMethod,
		time.Duration(dirs.WOPI.AccessTokenDuration)*time.Second)

	return &svc{
		conf:              conf,
		tokenManager:      tokenManager,
		nodeController:    nodeController,
		versionController: versionController,
	}, nil
}

// GetNodeController returns the configured NodeController.
func GetNodeController(conf *config.Config) (nodecontroller.NodeController, error) {
	dirs := conf.GetDirectives()
	switch dirs.WOPI.NodeStore {
	case "simple":
		return nodesimple.New(conf)
	default:
		return nil, errors.New("node store " + dirs.WOPI.NodeStore + " does not exist")
	}
}

// GetVersionController returns the configured VersionController.
func GetVersionController(conf *config.Config) (versioncontroller.VersionController, error) {
	dirs := conf.GetDirectives()
	switch dirs.WOPI.VersionStore {
	case "simple":
		return versionsimple.New(conf)
	default:
		return nil, errors.New("version store " + dirs.WOPI.VersionStore + " does not exist")
	}
}

func (s *svc) Name() string {
	return ServiceName
}

func (s *svc) BaseURL() string {
	if s.conf.GetDirectives().WOPI.BaseURL == "" {
		return "/"
	}
	return s.conf.GetDirectives().WOPI.BaseURL
}

// Endpoints is a listing of all endpoints available in the service.
func (s *svc) Endpoints() map[string]map[string]http.HandlerFunc {
	dirs := s.conf.GetDirectives()
	authenticator := authlib.NewAuthenticator(dirs.Server.JWTSecret, dirs.Server.JWTSigningMethod)

	return map[string]map[string]http.HandlerFunc{
		"/files/{node}": {
			"GET": s.tokenHandlerFunc(s.CheckFileInfo),
		},
		"/files/{node}/contents": {
			"GET": s.tokenHandlerFunc(s.GetFile),
		},
		"/token/{node}": {
			"POST": authenticator.JWTHandlerFunc(s.Token),
		},
	}
}

// wopiSrc returns the absolute CheckFileInfo URL for a node, the value
// the host page hands to the editor.
func (s *svc) wopiSrc(nodeID string) string {
	dirs := s.conf.GetDirectives()
	endpoint := path.Join(dirs.Server.BaseURL, s.BaseURL(), "files", nodeID)
	return strings.TrimSuffix(dirs.WOPI.PostMessageOrigin, "/") + endpoint
}
