package config

import (
	"errors"
	"sync"

	"github.com/imdario/mergo"
)

// New returns a new Config.
func New(sources []Source) *Config {
	conf := &Config{}
	conf.configSources = sources
	return conf
}

// Config is a configuration manager that loads configuration from different
// sources and merges them based on some priorities.
type Config struct {
	dirs    *Directives
	dirsMux sync.Mutex

	configSources []Source
}

// GetDirectives returns the configuration directives.
func (c *Config) GetDirectives() *Directives {
	c.dirsMux.Lock()
	defer c.dirsMux.Unlock()
	return c.dirs
}

// LoadDirectives retrieves and merges configurations from different sources.
func (c *Config) LoadDirectives() error {
	if len(c.configSources) == 0 {
		return errors.New("there are not configuration sources")
	}

	directives := []*Directives{}
	for _, src := range c.configSources {
		dirs, err := src.LoadDirectives()
		if err != nil {
			return err
		}
		directives = append(directives, dirs)
	}

	for i := range directives {
		if i+1 < len(directives) {
			if err := merge(directives[i+1], directives[i]); err != nil {
				return err
			}
		}
	}

	c.dirsMux.Lock()
	defer c.dirsMux.Unlock()
	c.dirs = directives[len(directives)-1]
	return nil
}

// merge fills the zero-value fields of left from right. A zero value in
// a higher-priority source therefore means "unset", never "override":
// boolean directives that default to true (UserCanWrite, CORSEnabled)
// cannot be turned off from a lower-priority source and must be changed
// where the default is defined.
func merge(left, right *Directives) error {
	return mergo.Merge(left, right)
}

// Source represents a configuration source where configuration can be loaded.
// Configurations can be loaded from different sources like file, etcd ...
type Source interface {
	LoadDirectives() (*Directives, error)
}

// Directives represents the different configuration options.
type Directives struct {
	Server         Server         `json:"server"`
	Authentication Authentication `json:"authentication"`
	WOPI           WOPI           `json:"wopi"`
}

// Server is the configuration section dedicated to the server.
type Server struct {
	BaseURL                       string   `json:"base_url"`
	Port                          int      `json:"port"`
	JWTSecret                     string   `json:"jwt_secret"`
	JWTSigningMethod              string   `json:"jwt_signing_method"`
	AppLog                        string   `json:"app_log"`
	AppLogLevel                   string   `json:"app_log_level"`
	AppLogMaxSize                 int      `json:"app_log_max_size"`
	AppLogMaxAge                  int      `json:"app_log_max_age"`
	AppLogMaxBackups              int      `json:"app_log_max_backups"`
	HTTPAccessLog                 string   `json:"http_access_log"`
	HTTPAccessLogLevel            string   `json:"http_access_log_level"`
	HTTPAccessLogMaxSize          int      `json:"http_access_log_max_size"`
	HTTPAccessLogMaxAge           int      `json:"http_access_log_max_age"`
	HTTPAccessLogMaxBackups       int      `json:"http_access_log_max_backups"`
	ShutdownTimeout               int      `json:"shutdown_timeout"`
	TLSEnabled                    bool     `json:"tls_enabled"`
	TLSCertificate                string   `json:"tls_certificate"`
	TLSPrivateKey                 string   `json:"tls_private_key"`
	EnabledServices               []string `json:"enabled_services"`
	CORSEnabled                   bool     `json:"cors_enabled"`
	CORSAccessControlAllowOrigin  []string `json:"cors_access_control_allow_origin"`
	CORSAccessControlAllowMethods []string `json:"cors_access_control_allow_methods"`
	CORSAccessControlAllowHeaders []string `json:"cors_access_control_allow_headers"`
}

// Authentication is the configuration section dedicated to the authentication service.
type Authentication struct {
	BaseURL string               `json:"base_url"`
	Type    string               `json:"type"`
	Memory  AuthenticationMemory `json:"memory"`
	SQL     AuthenticationSQL    `json:"sql"`
	LDAP    AuthenticationLDAP   `json:"ldap"`
}

// AuthenticationMemory is the configuration subsection dedicated to the
// authentication memory controller.
type AuthenticationMemory struct {
	Users interface{} `json:"users"`
}

// AuthenticationSQL is the configuration subsection dedicated to the
// authentication sql controller.
type AuthenticationSQL struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

// AuthenticationLDAP is the configuration subsection dedicated to the
// authentication ldap controller.
type AuthenticationLDAP struct {
	Hostname     string `json:"hostname"`
	Port         int    `json:"port"`
	BindUsername string `json:"bind_username"`
	BindPassword string `json:"bind_password"`
	BaseDN       string `json:"base_dn"`
	Filter       string `json:"filter"`
}

// WOPI is the configuration section dedicated to the WOPI service.
type WOPI struct {
	BaseURL string `json:"base_url"`
	// PostMessageOrigin is the external host origin embedding the editor,
	// sent verbatim to the editing client.
	PostMessageOrigin string `json:"post_message_origin"`
	// AccessTokenDuration is the lifetime in seconds of issued access tokens.
	AccessTokenDuration int             `json:"access_token_duration"`
	NodeStore           string          `json:"node_store"`
	VersionStore        string          `json:"version_store"`
	Simple              WOPISimple      `json:"simple"`
	Permissions         WOPIPermissions `json:"permissions"`
}

// WOPISimple is the configuration subsection dedicated to the simple
// (filesystem) node and version stores.
type WOPISimple struct {
	Namespace         string `json:"namespace"`
	MetaDataNamespace string `json:"metadata_namespace"`
	VersionsNamespace string `json:"versions_namespace"`
}

// WOPIPermissions holds the permission flags sent on CheckFileInfo
// responses. They are fixed policy for the whole deployment. Source
// merging keeps the first non-zero value per field, so a flag whose
// default is true stays true regardless of later sources; flip such
// defaults in code, not in a config file.
type WOPIPermissions struct {
	UserCanWrite           bool `json:"user_can_write"`
	DisableCopy            bool `json:"disable_copy"`
	DisablePrint           bool `json:"disable_print"`
	DisableExport          bool `json:"disable_export"`
	HideExportOption       bool `json:"hide_export_option"`
	HideSaveOption         bool `json:"hide_save_option"`
	HidePrintOption        bool `json:"hide_print_option"`
	EnableOwnerTermination bool `json:"enable_owner_termination"`
}
