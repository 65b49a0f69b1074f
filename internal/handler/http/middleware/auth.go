package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/storepulse/storeops-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a valid access token.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing access token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Actor carries the identity claims this backend consumes. Tokens are issued
// elsewhere; only role and store scope matter here.
type Actor struct {
	Role    string
	StoreID string
}

// ActorFromContext extracts the actor claims from the verified token.
func ActorFromContext(r *http.Request) Actor {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Actor{}
	}

	actor := Actor{}
	if role, ok := claims["role"].(string); ok {
		actor.Role = role
	}
	if storeID, ok := claims["store_id"].(string); ok {
		actor.StoreID = storeID
	}
	return actor
}
