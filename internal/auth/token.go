/* Signing and validation of verification receipts */

package auth

import (
	"errors"
	"os"
	"time"

	"TikTokBioVerifier/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

// The secret is read per call rather than at package init so the
// environment can be changed (and tested) without a process restart.
func receiptKey() []byte {
	return []byte(os.Getenv("RECEIPT_SECRET"))
}

var ErrReceiptsDisabled = errors.New("receipt signing is not configured")

// ReceiptClaims carries the verification verdict so downstream services
// can trust a result without re-fetching the profile.
type ReceiptClaims struct {
	Username string `json:"username"`
	Code     string `json:"code"`
	Found    bool   `json:"found"`
	jwt.RegisteredClaims
}

// ReceiptsEnabled reports whether RECEIPT_SECRET was configured.
func ReceiptsEnabled() bool {
	return len(receiptKey()) > 0
}

// SignReceipt wraps a verification result in a signed token.
func SignReceipt(result models.VerificationResult) (string, error) {
	if !ReceiptsEnabled() {
		return "", ErrReceiptsDisabled
	}

	claims := &ReceiptClaims{
		Username: result.Username,
		Code:     result.Code,
		Found:    result.Found,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        result.ID,
			ExpiresAt: jwt.NewNumericDate(result.Timestamp.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(result.Timestamp),
			Issuer:    "tiktok-bio-verifier",
			Subject:   "verification_receipt",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(receiptKey())
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateReceipt parses a presented receipt and returns its claims.
func ValidateReceipt(tokenString string) (*ReceiptClaims, error) {
	if !ReceiptsEnabled() {
		return nil, ErrReceiptsDisabled
	}

	claims := &ReceiptClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return receiptKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
