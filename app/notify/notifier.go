package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a channel-independent message; each webhook shapes
// it into its own payload format.
type Notification struct {
	Severity Severity
	Title    string
	Message  string
	Details  map[string]string
}

// Notifier posts notifications to the configured Discord and Slack
// webhooks. Either URL may be empty; with both empty, notifications
// are logged and dropped.
type Notifier struct {
	discordWebhookURL string
	slackWebhookURL   string
	client            *http.Client
}

func NewNotifier(discordWebhookURL, slackWebhookURL string, client *http.Client) *Notifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Notifier{
		discordWebhookURL: discordWebhookURL,
		slackWebhookURL:   slackWebhookURL,
		client:            client,
	}
}

// Notify delivers to all configured channels concurrently. Delivery
// failures are logged, never propagated: notifications are advisory
// and must not affect the pipeline.
func (n *Notifier) Notify(ctx context.Context, notification Notification) {
	if n.discordWebhookURL == "" && n.slackWebhookURL == "" {
		slog.Info("Notification (no webhooks configured)",
			"severity", string(notification.Severity),
			"title", notification.Title,
			"message", notification.Message)
		return
	}

	g, gctx := errgroup.WithContext(ctx)

	if n.discordWebhookURL != "" {
		g.Go(func() error {
			if err := n.post(gctx, n.discordWebhookURL, discordPayload(notification)); err != nil {
				slog.Warn("Discord notification failed", "error", err)
			}
			return nil
		})
	}

	if n.slackWebhookURL != "" {
		g.Go(func() error {
			if err := n.post(gctx, n.slackWebhookURL, slackPayload(notification)); err != nil {
				slog.Warn("Slack notification failed", "error", err)
			}
			return nil
		})
	}

	g.Wait()
}

func (n *Notifier) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// sortedDetails gives a stable field order so repeated notifications
// render identically.
func sortedDetails(details map[string]string) []string {
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      struct {
		Text string `json:"text"`
	} `json:"footer"`
	Timestamp string `json:"timestamp"`
}

func discordPayload(notification Notification) any {
	colors := map[Severity]int{
		SeverityInfo:    0x22c55e,
		SeverityWarning: 0xeab308,
		SeverityError:   0xef4444,
	}

	embed := discordEmbed{
		Title:       notification.Title,
		Description: notification.Message,
		Color:       colors[notification.Severity],
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	embed.Footer.Text = "Nyack Events"

	for _, key := range sortedDetails(notification.Details) {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   key,
			Value:  notification.Details[key],
			Inline: false,
		})
	}

	return map[string]any{
		"embeds": []discordEmbed{embed},
	}
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func slackPayload(notification Notification) any {
	emoji := map[Severity]string{
		SeverityInfo:    ":white_check_mark:",
		SeverityWarning: ":warning:",
		SeverityError:   ":x:",
	}

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: notification.Title},
		},
		{
			Type: "section",
			Text: &slackText{
				Type: "mrkdwn",
				Text: emoji[notification.Severity] + " " + notification.Message,
			},
		},
	}

	if len(notification.Details) > 0 {
		var fields []slackText
		for _, key := range sortedDetails(notification.Details) {
			fields = append(fields, slackText{
				Type: "mrkdwn",
				Text: "*" + key + "*\n" + notification.Details[key],
			})
		}
		// Slack caps section fields at 10.
		if len(fields) > 10 {
			fields = fields[:10]
		}
		blocks = append(blocks, slackBlock{Type: "section", Fields: fields})
	}

	return map[string]any{"blocks": blocks}
}
