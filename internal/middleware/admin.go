// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for admin authentication
// and request throttling.
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// Admin token sources, any one of which may carry the secret.
const (
	HeaderAuthorization = "Authorization"
	HeaderAdminToken    = "X-Admin-Token"
	QueryToken          = "token"
)

// writeAuthError writes the 401 response in the API's envelope shape.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":    false,
		"error": "Unauthorized",
	})
}

// extractToken pulls the candidate token from the bearer header, the
// custom header, or the query parameter, in that order.
func extractToken(r *http.Request) string {
	if auth := r.Header.Get(HeaderAuthorization); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return strings.TrimSpace(auth)
	}
	if tok := strings.TrimSpace(r.Header.Get(HeaderAdminToken)); tok != "" {
		return tok
	}
	return strings.TrimSpace(r.URL.Query().Get(QueryToken))
}

// AdminAuth creates middleware that validates the admin token. With an
// empty secret the endpoints are ungated and every request passes; the
// comparison is constant-time when a secret is configured.
func AdminAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				writeAuthError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
