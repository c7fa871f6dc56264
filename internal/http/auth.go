package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
)

// Authenticator validates bearer tokens and places the resulting actor on the
// request context. Tokens are HS256 with the party id in sub and the account
// email in an email claim.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		actor, err := a.parse(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.WithActor(r.Context(), actor)))
	})
}

func (a *Authenticator) parse(token string) (identity.Actor, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return identity.Actor{}, fmt.Errorf("parse token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return identity.Actor{}, fmt.Errorf("subject claim: %w", err)
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return identity.Actor{}, fmt.Errorf("subject is not a party id: %w", err)
	}

	email, _ := claims["email"].(string)

	return identity.Actor{ID: id, Email: email}, nil
}
