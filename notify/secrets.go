// Package notify delivers game-lifecycle events to Discord, uploads
// finished-game replays to Google Cloud Storage, and pushes a summary
// frame to a Tidbyt device, pulling its own credentials from Google
// Secret Manager. Grounded on the teacher's getSecret, discord.go,
// bucket.go, and tidbyt.go.
package notify

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Secrets resolves named Google Secret Manager resource paths into
// their latest payload, grounded on getSecret.
type Secrets struct{}

// Resolve fetches the latest version of the secret at name (e.g.
// "projects/680796481131/secrets/discord_webhook/versions/latest").
func (Secrets) Resolve(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("notify: create secret manager client: %w", err)
	}
	defer client.Close()

	req := &secretmanagerpb.AccessSecretVersionRequest{Name: name}
	result, err := client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("notify: access secret version %q: %w", name, err)
	}
	return string(result.Payload.GetData()), nil
}
