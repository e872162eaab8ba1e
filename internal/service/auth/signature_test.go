package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	body := []byte(`{"order_id":"TT-100"}`)
	secret := "whsec_test"
	valid := Sign(secret, body)

	tests := []struct {
		name      string
		body      []byte
		signature string
		wantErr   bool
	}{
		{"valid", body, valid, false},
		{"valid with prefix", body, "sha256=" + valid, false},
		{"tampered body", []byte(`{"order_id":"TT-101"}`), valid, true},
		{"wrong secret", body, Sign("other", body), true},
		{"not hex", body, "zzzz", true},
		{"empty", body, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := VerifySignature(secret, tt.body, tt.signature)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSignature)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
