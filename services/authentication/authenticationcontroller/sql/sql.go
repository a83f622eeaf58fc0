package sql

import (
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"    // enable mysql dialect
	_ "github.com/jinzhu/gorm/dialects/postgres" // enable postgres dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // enable sqlite3 dialect
	"github.com/t-dias/libreoffice-online-repo/config"
	"github.com/t-dias/libreoffice-online-repo/entities"
	"github.com/t-dias/libreoffice-online-repo/services/authentication/authenticationcontroller"
	"github.com/t-dias/libreoffice-online-repo/services/authentication/lib"
)

type controller struct {
	driver, dsn   string
	db            *gorm.DB
	authenticator *lib.Authenticator
}

// New returns an AuthenticationController that uses a SQL database for
// handling users and JWT for tokens.
func New(conf *config.Config) (authenticationcontroller.AuthenticationController, error) {
	dirs := conf.GetDirectives()
	db, err := gorm.Open(dirs.Authentication.SQL.Driver, dirs.Authentication.SQL.DSN)
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(&userRecord{}).Error
	if err != nil {
		return nil, err
	}

	return &controller{
		driver:        dirs.Authentication.SQL.Driver,
		dsn:           dirs.Authentication.SQL.DSN,
		db:            db,
		authenticator: lib.NewAuthenticator(dirs.Server.JWTSecret, dirs.Server.JWTSigningMethod),
	}, nil
}

func (c *controller) Authenticate(username, password string) (string, error) {
	rec, err := c.findByCredentials(username, password)
	if err != nil {
		return "", err
	}
	u := &entities.User{
		Username:    rec.Username,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
	}
	return c.authenticator.CreateToken(u)
}

// findByCredentials finds an user given an username and a password.
func (c *controller) findByCredentials(username, password string) (*userRecord, error) {
	rec := &userRecord{}
	err := c.db.Where("username=? AND password=?", username, password).First(rec).Error
	return rec, err
}

type userRecord struct {
	Username    string `gorm:"primary_key"`
	Email       string
	DisplayName string
	Password    string
}

func (u userRecord) TableName() string {
	return "users"
}
