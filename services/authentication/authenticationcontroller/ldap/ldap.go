package ldap

import (
	"crypto/tls"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/t-dias/libreoffice-online-repo/config"
	"github.com/t-dias/libreoffice-online-repo/entities"
	"github.com/t-dias/libreoffice-online-repo/helpers"
	"github.com/t-dias/libreoffice-online-repo/services/authentication/authenticationcontroller"
	"github.com/t-dias/libreoffice-online-repo/services/authentication/lib"
	ldap "gopkg.in/ldap.v2"
)

type controller struct {
	log           *logrus.Entry
	hostname      string
	port          int
	bindUsername  string
	bindPassword  string
	baseDN        string
	filter        string
	authenticator *lib.Authenticator
}

// New returns an AuthenticationController that authenticates users
// against an LDAP directory and issues JWT tokens.
func New(conf *config.Config) (authenticationcontroller.AuthenticationController, error) {
	dirs := conf.GetDirectives()
	return &controller{
		log:           helpers.GetAppLogger(conf).WithField("module", "ldap:authenticationcontroller"),
		hostname:      dirs.Authentication.LDAP.Hostname,
		port:          dirs.Authentication.LDAP.Port,
		bindUsername:  dirs.Authentication.LDAP.BindUsername,
		bindPassword:  dirs.Authentication.LDAP.BindPassword,
		baseDN:        dirs.Authentication.LDAP.BaseDN,
		filter:        dirs.Authentication.LDAP.Filter,
		authenticator: lib.NewAuthenticator(dirs.Server.JWTSecret, dirs.Server.JWTSigningMethod),
	}, nil
}

func (c *controller) Authenticate(username, password string) (string, error) {
	l, err := ldap.DialTLS("tcp", fmt.Sprintf("%s:%d", c.hostname, c.port), &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		c.log.WithError(err).Error("cannot connect to ldap server")
		return "", err
	}
	defer l.Close()

	// First bind with a read only user
	if err := l.Bind(c.bindUsername, c.bindPassword); err != nil {
		c.log.WithError(err).Error("cannot bind with read only user")
		return "", err
	}

	// Search for the given username
	searchRequest := ldap.NewSearchRequest(
		c.baseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		fmt.Sprintf(c.filter, username),
		[]string{"dn", "mail", "displayName"},
		nil,
	)

	sr, err := l.Search(searchRequest)
	if err != nil {
		c.log.WithError(err).Error("ldap search failed")
		return "", err
	}

	if len(sr.Entries) != 1 {
		err := fmt.Errorf("user %s not found", username)
		c.log.WithError(err).Error("cannot find user")
		return "", err
	}

	entry := sr.Entries[0]

	// Bind as the user to verify their password
	if err := l.Bind(entry.DN, password); err != nil {
		c.log.WithError(err).Error("user bind failed")
		return "", err
	}

	u := &entities.User{
		Username:    username,
		Email:       entry.GetAttributeValue("mail"),
		DisplayName: entry.GetAttributeValue("displayName"),
	}
	return c.authenticator.CreateToken(u)
}
