package authenticationcontroller

// AuthenticationController is an interface to authenticate users and
// issue authentication tokens.
type AuthenticationController interface {
	Authenticate(username, password string) (string, error)
}
