package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DiscordNotifier posts order events to a back-office Discord channel
// via an incoming webhook.
type DiscordNotifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type discordMessage struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title  string         `json:"title"`
	Color  int            `json:"color"`
	Fields []discordField `json:"fields"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// NotifyOrderPaid sends a payment confirmation embed.
func (d *DiscordNotifier) NotifyOrderPaid(ctx context.Context, orderNumber, customerEmail, total string) error {
	if d.webhookURL == "" {
		// Webhook not configured; skip silently in development
		return nil
	}

	msg := discordMessage{
		Embeds: []discordEmbed{
			{
				Title: "Order paid",
				Color: 0x2ecc71,
				Fields: []discordField{
					{Name: "Order", Value: orderNumber, Inline: true},
					{Name: "Customer", Value: customerEmail, Inline: true},
					{Name: "Total", Value: total + " THB", Inline: true},
				},
			},
		},
	}

	return d.post(ctx, msg)
}

func (d *DiscordNotifier) post(ctx context.Context, msg discordMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal discord message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	return nil
}
