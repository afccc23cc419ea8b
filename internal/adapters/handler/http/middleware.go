package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const VoterIDKey contextKey = "voter_id"

const accessTokenCookie = "access_token"

// VoterIdentity resolves the already-authenticated voter from the access token
// issued upstream. It does not log anyone in.
type VoterIdentity struct {
	secret []byte
}

func NewVoterIdentity(secret string) *VoterIdentity {
	return &VoterIdentity{secret: []byte(secret)}
}

// Resolve stores the voter id in the request context when a token is present.
// Requests without a token continue anonymously; a bad token is rejected.
func (v *VoterIdentity) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		voterID, err := v.voterID(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized: "+err.Error(), "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), VoterIDKey, voterID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (v *VoterIdentity) voterID(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, errors.New("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, errors.New("missing subject")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("invalid subject")
	}
	return id, nil
}

func RequireVoter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := VoterFromContext(r.Context()); !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized: missing voter context", "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// VoterFromContext returns the voter resolved for this request. Anonymous
// requests yield uuid.Nil and false.
func VoterFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(VoterIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
