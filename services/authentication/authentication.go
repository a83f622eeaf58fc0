package authentication

import (
	"errors"
	"net/http"

	"github.com/t-dias/libreoffice-online-repo/config"
	"github.com/t-dias/libreoffice-online-repo/services"
	"github.com/t-dias/libreoffice-online-repo/services/authentication/authenticationcontroller"
	"github.com/t-dias/libreoffice-online-repo/services/authentication/authenticationcontroller/ldap"
	"github.com/t-dias/libreoffice-online-repo/services/authentication/authenticationcontroller/memory"
	"github.com/t-dias/libreoffice-online-repo/services/authentication/authenticationcontroller/sql"
)

// ServiceName identifies this service.
const ServiceName string = "authentication"

type svc struct {
	conf                     *config.Config
	authenticationController authenticationcontroller.AuthenticationController
}

// New returns a new Service.
func New(conf *config.Config) (services.Service, error) {
	authenticationController, err := GetAuthenticationController(conf)
	if err != nil {
		return nil, err
	}

	return &svc{
		conf:                     conf,
		authenticationController: authenticationController,
	}, nil
}

// GetAuthenticationController returns the configured AuthenticationController.
func GetAuthenticationController(conf *config.Config) (authenticationcontroller.AuthenticationController, error) {
	dirs := conf.GetDirectives()
	switch dirs.Authentication.Type {
	case "memory":
		return memory.New(conf)
	case "sql":
		return sql.New(conf)
	case "ldap":
		return ldap.New(conf)
	default:
		return nil, errors.New("authentication type " + dirs.Authentication.Type + " does not exist")
	}
}

func (s *svc) Name() string {
	return ServiceName
}

func (s *svc) BaseURL() string {
	if s.conf.GetDirectives().Authentication.BaseURL == "" {
		return "/"
	}
	return s.conf.GetDirectives().Authentication.BaseURL
}

// Endpoints is a listing of all endpoints available in the service.
func (s *svc) Endpoints() map[string]map[string]http.HandlerFunc {
	return map[string]map[string]http.HandlerFunc{
		"/ping": {
			"GET": s.Ping,
		},
		"/token": {
			"POST": s.Token,
		},
	}
}
