package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

const maxErrorBodySize = 4096

// Notifier posts card batches to a Discord-compatible webhook. There is no
// retry; callers decide what a failed delivery means.
type Notifier struct {
	httpClient *http.Client
	webhookURL string
}

func NewNotifier(httpClient *http.Client, webhookURL string) *Notifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Notifier{
		httpClient: httpClient,
		webhookURL: webhookURL,
	}
}

// Send validates the batch with Build and posts it in a single request.
func (n *Notifier) Send(ctx context.Context, batch Batch) error {
	cards, err := Build(batch.Cards)
	if err != nil {
		return err
	}

	body, err := json.Marshal(webhookParams(batch.Content, cards))
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &DeliveryError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	slog.Info("Notification sent", "cards", len(cards))
	return nil
}

func webhookParams(content string, cards []Card) *discordgo.WebhookParams {
	embeds := make([]*discordgo.MessageEmbed, 0, len(cards))
	for _, card := range cards {
		embed := &discordgo.MessageEmbed{
			Title:       card.Title,
			Description: card.Description,
			URL:         card.URL,
			Color:       card.Color,
			Timestamp:   card.Timestamp,
		}
		for _, field := range card.Fields {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   field.Name,
				Value:  field.Value,
				Inline: field.Inline,
			})
		}
		embeds = append(embeds, embed)
	}

	return &discordgo.WebhookParams{
		Content: content,
		Embeds:  embeds,
	}
}
