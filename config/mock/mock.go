package mock

import (
	"github.com/stretchr/testify/mock"
	"github.com/t-dias/libreoffice-online-repo/config"
)

// Source mocks a configuration Source for testing purposes.
type Source struct {
	mock.Mock
}

// LoadDirectives mocks the LoadDirectives call.
func (c *Source) LoadDirectives() (*config.Directives, error) {
	args := c.Called()
	return args.Get(0).(*config.Directives), args.Error(1)
}
