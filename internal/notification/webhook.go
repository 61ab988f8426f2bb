package notification

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// SendDisputeAlert posts a webhook when a commission record enters
// dispute, so finance gets pinged without polling the ledger. Fire and
// forget: a delivery failure is logged, never surfaced to the transition.
func SendDisputeAlert(recordID uint, salespersonID uint, reason string) {
	url := os.Getenv("DISPUTE_WEBHOOK_URL")
	if url == "" {
		return
	}

	payload := map[string]interface{}{
		"message":       "commission record disputed",
		"recordId":      recordID,
		"salespersonId": salespersonID,
		"reason":        reason,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("dispute webhook failed: %v", err)
		return
	}
	defer resp.Body.Close()
}
