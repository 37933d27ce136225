package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"fitcoach-ai-backend/internal/domain"
)

// SignPayment computes the hex HMAC-SHA256 the gateway attaches to a
// payment: the message is "{order_id}|{payment_id}" in UTF-8.
func SignPayment(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks a claimed hex HMAC-SHA256 over message with a
// constant-time compare. Any decode failure counts as a mismatch.
func VerifySignature(message []byte, signature, secret string) error {
	claimed, err := hex.DecodeString(signature)
	if err != nil {
		return domain.ErrInvalidSignature
	}
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(message)
	if !hmac.Equal(h.Sum(nil), claimed) {
		return domain.ErrInvalidSignature
	}
	return nil
}

// RequireSignatureIfConfigured rejects unsigned calls when a secret is
// configured; without it a missing header would be silently accepted.
func RequireSignatureIfConfigured(signature, secret string) error {
	if secret != "" && signature == "" {
		return domain.ErrMissingSignature
	}
	return nil
}
