package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"TikTokBioVerifier/internal/auth"
	"TikTokBioVerifier/internal/models"
	"TikTokBioVerifier/internal/tiktok"
	"TikTokBioVerifier/internal/verifier"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VerifyHandler struct {
	fetcher verifier.BioFetcher
	sleep   func(time.Duration)
}

func NewVerifyHandler(fetcher verifier.BioFetcher) *VerifyHandler {
	return &VerifyHandler{fetcher: fetcher, sleep: time.Sleep}
}

// Verify checks whether the submitted code appears in the profile bio.
func (h *VerifyHandler) Verify(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Code     string `json:"code"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request", "category": "validation"})
		return
	}

	username := models.NormalizeUsername(req.Username)
	code := strings.TrimSpace(req.Code)
	if username == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Username and code cannot be empty", "category": "validation"})
		return
	}

	v := verifier.New(h.fetcher)
	v.Sleep = h.sleep

	found, err := v.CheckBio(c.Request.Context(), username, code)
	if err != nil {
		status, category := classifyError(err)
		log.Printf("Verify(): check failed for %s: %v", username, err)
		c.JSON(status, gin.H{"success": false, "error": err.Error(), "category": category})
		return
	}

	result := models.VerificationResult{
		ID:        uuid.New().String(),
		Username:  username,
		Code:      code,
		Found:     found,
		Timestamp: time.Now().UTC(),
	}

	resp := gin.H{
		"success":    true,
		"found":      result.Found,
		"username":   result.Username,
		"code":       result.Code,
		"timestamp":  result.Timestamp,
		"request_id": result.ID,
	}
	if auth.ReceiptsEnabled() {
		receipt, err := auth.SignReceipt(result)
		if err != nil {
			log.Printf("Verify(): failed to sign receipt for %s: %v", username, err)
		} else {
			resp["receipt"] = receipt
		}
	}
	c.JSON(http.StatusOK, resp)
}

// CheckReceipt validates a previously issued verification receipt and
// echoes the verdict it certifies.
func (h *VerifyHandler) CheckReceipt(c *gin.Context) {
	var req struct {
		Receipt string `json:"receipt"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Receipt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	claims, err := auth.ValidateReceipt(req.Receipt)
	if err != nil {
		if errors.Is(err, auth.ErrReceiptsDisabled) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "Receipts are not enabled"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid receipt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"username": claims.Username,
		"code":     claims.Code,
		"found":    claims.Found,
	})
}

// classifyError maps terminal fetch errors onto a response status and a
// stable category string for callers.
func classifyError(err error) (int, string) {
	var statusErr *tiktok.StatusError
	switch {
	case errors.Is(err, tiktok.ErrProfileNotFound):
		return http.StatusNotFound, "profile_not_found"
	case errors.Is(err, tiktok.ErrBlocked):
		return http.StatusBadGateway, "blocked"
	case errors.As(err, &statusErr):
		return http.StatusBadGateway, "upstream_status"
	default:
		return http.StatusGatewayTimeout, "network"
	}
}
