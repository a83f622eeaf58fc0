package defaul

import (
	"github.com/t-dias/libreoffice-online-repo/config"
)

// DefaultDirectives represents the default configuration used by the server.
// This default configuration must work out-of-the-box without using user
// supplied config files.
var DefaultDirectives = config.Directives{
	Server: config.Server{
		BaseURL:                       "/api/v1/",
		Port:                          1502,
		JWTSecret:                     "you must change me",
		JWTSigningMethod:              "HS256",
		AppLog:                        "stdout",
		AppLogLevel:                   "info",
		AppLogMaxSize:                 100, // MiB
		HTTPAccessLog:                 "stdout",
		HTTPAccessLogLevel:            "info",
		HTTPAccessLogMaxSize:          100, // MiB
		ShutdownTimeout:               10,
		EnabledServices:               []string{"authentication", "wopi"},
		CORSEnabled:                   true,
		CORSAccessControlAllowOrigin:  []string{},
		CORSAccessControlAllowMethods: []string{"GET", "POST", "HEAD"},
		CORSAccessControlAllowHeaders: []string{"*"},
	},

	Authentication: config.Authentication{
		BaseURL: "/authentication/",
		Type:    "memory",

		Memory: config.AuthenticationMemory{
			Users: getDefaultMemoryUsers(),
		},

		SQL: config.AuthenticationSQL{
			Driver: "mysql",
			DSN:    "root:passwd@tcp(localhost:3306)/users",
		},

		LDAP: config.AuthenticationLDAP{
			Hostname: "localhost",
			Port:     636,
			BaseDN:   "ou=users,dc=example,dc=com",
			Filter:   "(&(objectClass=person)(uid=%s))",
		},
	},

	WOPI: config.WOPI{
		BaseURL:             "/wopi/",
		PostMessageOrigin:   "http://localhost:1502",
		AccessTokenDuration: 3600,
		NodeStore:           "simple",
		VersionStore:        "simple",

		Simple: config.WOPISimple{
			Namespace:         "/tmp/wopi-namespace",
			MetaDataNamespace: "/tmp/wopi-metadata-namespace",
			VersionsNamespace: "/tmp/wopi-versions-namespace",
		},

		// Copy, print and export stay enabled so the editor can render
		// every element; owner termination stays off.
		Permissions: config.WOPIPermissions{
			UserCanWrite: true,
		},
	},
}

type conf struct{}

// New returns a source that always loads the default configuration.
func New() config.Source {
	return &conf{}
}

// LoadDirectives returns the configuration directives.
func (c *conf) LoadDirectives() (*config.Directives, error) {
	return &DefaultDirectives, nil
}

func getDefaultMemoryUsers() interface{} {
	users := []map[string]interface{}{}
	user := map[string]interface{}{}
	user["username"] = "demo"
	user["email"] = "demo@example.com"
	user["display_name"] = "Demo User"
	user["password"] = "demo"
	users = append(users, user)
	return users
}
