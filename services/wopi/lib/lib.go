package lib

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/t-dias/libreoffice-online-repo/entities"
)

// TokenManager creates and validates WOPI access tokens. An access token
// is bound at issuance to one node and one user and carries its own expiry.
type TokenManager struct {
	JWTKey           string
	JWTSigningMethod string
	Duration         time.Duration
}

// TokenInfo is the result of validating an access token.
type TokenInfo struct {
	User   *entities.User
	NodeID string
}

// NewTokenManager returns a new TokenManager.
func NewTokenManager(key, method string, duration time.Duration) *TokenManager {
	return &TokenManager{JWTKey: key, JWTSigningMethod: method, Duration: duration}
}

// CreateToken returns an access token scoped to the given user and node.
func (m *TokenManager) CreateToken(user *entities.User, nodeID string) (string, error) {
	if user == nil {
		return "", errors.New("user is nil")
	}
	if nodeID == "" {
		return "", errors.New("node id is empty")
	}
	token := jwt.NewWithClaims(jwt.GetSigningMethod(m.JWTSigningMethod), jwt.MapClaims{
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"node_id":      nodeID,
		"exp":          time.Now().Add(m.Duration).Unix(),
	})
	return token.SignedString([]byte(m.JWTKey))
}

// ValidateToken parses an access token and returns the user and node it
// was issued for.
func (m *TokenManager) ValidateToken(token string) (*TokenInfo, error) {
	rawToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.JWTKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := rawToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("token claims failed cast to map claims")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, errors.New("token username claim failed cast to string")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, errors.New("token email claim failed cast to string")
	}

	displayName, ok := claims["display_name"].(string)
	if !ok {
		return nil, errors.New("token display_name claim failed cast to string")
	}

	nodeID, ok := claims["node_id"].(string)
	if !ok {
		return nil, errors.New("token node_id claim failed cast to string")
	}

	return &TokenInfo{
		User: &entities.User{
			Username:    username,
			Email:       email,
			DisplayName: displayName,
		},
		NodeID: nodeID,
	}, nil
}

// GetTokenFromRequest extracts the access token from the request. WOPI
// clients send it in the access_token query parameter; the Authorization
// header is accepted as well.
func (m *TokenManager) GetTokenFromRequest(r *http.Request) string {
	if t := r.URL.Query().Get("access_token"); t != "" {
		return t
	}
	header := r.Header.Get("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// ResolveRequest validates the access token carried by the request and
// checks that it was issued for the node addressed in the URL.
func (m *TokenManager) ResolveRequest(r *http.Request) (*TokenInfo, error) {
	token := m.GetTokenFromRequest(r)
	if token == "" {
		return nil, errors.New("access token is missing")
	}
	info, err := m.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if node := mux.Vars(r)["node"]; node != info.NodeID {
		return nil, errors.New("access token was not issued for this node")
	}
	return info, nil
}
