package handler

import (
	"log"
	"net/http"
	"strings"

	"TikTokBioVerifier/internal/models"
	"TikTokBioVerifier/internal/verifier"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type streamEvent struct {
	Event   string `json:"event"`
	Attempt int    `json:"attempt,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Found   *bool  `json:"found,omitempty"`
}

// VerifyStream runs the same verification as the POST endpoint but
// streams each attempt's outcome over a websocket, ending with a result
// or error frame. Clients connect with ws:// and pass username and code
// as query parameters.
func (h *VerifyHandler) VerifyStream(c *gin.Context) {
	username := models.NormalizeUsername(c.Query("username"))
	code := strings.TrimSpace(c.Query("code"))
	if username == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and code query parameters are required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("VerifyStream(): failed to upgrade to WebSocket for %s: %v", username, err)
		return
	}
	defer conn.Close()
	log.Printf("Verification stream opened for %s", username)

	v := verifier.New(h.fetcher)
	v.Sleep = h.sleep
	v.OnAttempt = func(outcome verifier.AttemptOutcome) {
		event := streamEvent{Event: "attempt", Attempt: outcome.Attempt}
		switch {
		case outcome.Err != nil:
			event.Detail = outcome.Err.Error()
		case outcome.GotBio:
			event.Detail = "bio obtained"
		default:
			event.Detail = "no bio recognized"
		}
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("VerifyStream(): failed to send attempt event for %s: %v", username, err)
		}
	}

	found, err := v.CheckBio(c.Request.Context(), username, code)
	if err != nil {
		_, category := classifyError(err)
		if err := conn.WriteJSON(streamEvent{Event: "error", Detail: category}); err != nil {
			log.Printf("VerifyStream(): failed to send error event for %s: %v", username, err)
		}
		return
	}

	if err := conn.WriteJSON(streamEvent{Event: "result", Found: &found}); err != nil {
		log.Printf("VerifyStream(): failed to send result for %s: %v", username, err)
	}
	log.Printf("Verification stream finished for %s: found=%t", username, found)
}
