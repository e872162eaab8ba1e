package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/analogalgo/letters/internal/api/shared"
	"github.com/analogalgo/letters/internal/service/auth"
)

// WebhookSignature verifies the storefront's HMAC-SHA256 signature over the
// raw request body. An empty secret disables the check. The body is restored
// for the next handler.
func WebhookSignature(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(io.LimitReader(r.Body, shared.MaxBodyBytes))
			if err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Unreadable request body", err)
				return
			}
			_ = r.Body.Close()

			if err := auth.VerifySignature(secret, body, r.Header.Get(auth.SignatureHeader)); err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid signature", err,
					shared.WithElevatedLogLevel())
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
