package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Discord posts registrations to a channel webhook. No bot token is needed.
type Discord struct {
	session   *discordgo.Session
	webhookID string
	token     string
}

// NewDiscord accepts a webhook URL of the form https://discord.com/api/webhooks/{id}/{token}.
func NewDiscord(webhookURL string) (*Discord, error) {
	webhookID, token, err := ParseDiscordWebhookURL(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("NewDiscord: %w", err)
	}
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("NewDiscord: %w", err)
	}
	return &Discord{session: session, webhookID: webhookID, token: token}, nil
}

func ParseDiscordWebhookURL(raw string) (webhookID, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// api/webhooks/{id}/{token}, optionally api/v10/webhooks/{id}/{token}
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("not a discord webhook url: %q", raw)
}

func (d *Discord) Notify(ctx context.Context, reg Registration) error {
	if _, err := d.session.WebhookExecute(d.webhookID, d.token, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       reg.EventTitle,
				Description: reg.Message(),
				Timestamp:   reg.At.UTC().Format(time.RFC3339),
				Footer: &discordgo.MessageEmbedFooter{
					Text: reg.EventID,
				},
			},
		},
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("(*Discord).Notify: %w", err)
	}
	return nil
}
