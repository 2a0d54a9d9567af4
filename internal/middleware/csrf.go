package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/barbatoslupus21/unisync-overview/pkg/logger"
)

const (
	CSRFCookie = "csrftoken"
	CSRFHeader = "X-CSRFToken"
)

// CSRF implements the double-submit cookie check browser clients of the
// portal already speak: safe requests receive a csrftoken cookie, unsafe
// requests must echo it in X-CSRFToken.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CSRFCookie)
		hasCookie := err == nil && cookie.Value != ""

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if !hasCookie {
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookie,
					Value:    newCSRFToken(),
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
					Secure:   r.TLS != nil,
				})
			}
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(CSRFHeader)
		if !hasCookie || header == "" || subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
			logger.FromContext(r.Context()).Warn("csrf check failed", "has_cookie", hasCookie, "has_header", header != "")
			http.Error(w, "CSRF verification failed", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newCSRFToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
