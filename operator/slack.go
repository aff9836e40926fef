package operator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warden-social/warden/gate"
)

// SlackChannel posts confirmation prompts to a slack channel via "incoming
// webhook". Outbound only: answers come back through another transport (eg
// the HTTP response endpoint).
//
// The slack incoming webhook must be already configured in the slack
// workplace.
type SlackChannel struct {
	WebhookURL string
	Client     *http.Client
}

var _ gate.Notifier = (*SlackChannel)(nil)

type slackWebhookBody struct {
	Text string `json:"text"`
}

func (c *SlackChannel) Publish(ctx context.Context, req gate.Request) error {
	msg := fmt.Sprintf("⚠️ Moderation Review Required ⚠️\n%s\nAddressed to: `%s`\nReply-to content ID: `%s`\n", req.Prompt, req.Operator, req.ContentID)

	body, err := json.Marshal(slackWebhookBody{Text: msg})
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Add("Content-Type", "application/json")
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if resp.StatusCode != 200 || buf.String() != "ok" {
		return fmt.Errorf("failed slack webhook POST request. status=%d", resp.StatusCode)
	}
	return nil
}
