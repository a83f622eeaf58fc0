package keys

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/t-dias/libreoffice-online-repo/entities"
)

type contextKey int

const (
	// To add new keys always add them at the end, to not break iota

	logKey contextKey = iota
	userKey
	accessTokenKey
	traceIDKey
)

// SetLog stores a log entry into the context.
func SetLog(ctx context.Context, log *logrus.Entry) context.Context {
	return context.WithValue(ctx, logKey, log)
}

// GetLog retrieves a log entry from the context.
func GetLog(ctx context.Context) (*logrus.Entry, bool) {
	log, ok := ctx.Value(logKey).(*logrus.Entry)
	return log, ok
}

// MustGetLog retrieves a log entry from the context or panics.
func MustGetLog(ctx context.Context) *logrus.Entry {
	log, ok := GetLog(ctx)
	if !ok {
		panic("log entry not found in context")
	}
	return log
}

// SetUser stores an user into the context.
func SetUser(ctx context.Context, user *entities.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves an user from the context.
func GetUser(ctx context.Context) (*entities.User, bool) {
	user, ok := ctx.Value(userKey).(*entities.User)
	return user, ok
}

// MustGetUser retrieves an user from the context or panics.
func MustGetUser(ctx context.Context) *entities.User {
	user, ok := GetUser(ctx)
	if !ok {
		panic("user not found in context")
	}
	return user
}

// SetAccessToken stores the raw access token into the context.
func SetAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// GetAccessToken retrieves the raw access token from the context.
func GetAccessToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey).(string)
	return token, ok
}

// SetTraceID stores the request trace ID into the context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID retrieves the request trace ID from the context.
func GetTraceID(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(traceIDKey).(string)
	return traceID, ok
}
