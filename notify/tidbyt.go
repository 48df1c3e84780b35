package notify

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const tidbytPushURL = "https://api.tidbyt.com/v0/devices/%s/push"

type tidbytPushRequest struct {
	Image      string `json:"image"`
	Background bool   `json:"background"`
}

// Tidbyt pushes a rendered frame to a physical Tidbyt display, grounded
// on PushToTidbyt.
type Tidbyt struct {
	DeviceID string
	APIKey   string
}

// Push sends webp (already WebP-encoded image bytes) to the device.
func (t Tidbyt) Push(webp []byte) error {
	reqBody := tidbytPushRequest{
		Image:      base64.StdEncoding.EncodeToString(webp),
		Background: false,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("notify: marshal tidbyt request: %w", err)
	}

	url := fmt.Sprintf(tidbytPushURL, t.DeviceID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build tidbyt request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", t.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send tidbyt request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify: tidbyt api returned status %s", resp.Status)
	}

	slog.Info("frame pushed to tidbyt", "device_id", t.DeviceID)
	return nil
}
