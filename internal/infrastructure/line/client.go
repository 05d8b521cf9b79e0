package line

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the linebot.Client used for Messaging API pushes.
type Client struct {
	*linebot.Client
	log logger.Logger
}

// NewClient creates a Messaging API client. apiBaseURL overrides https://api.line.me when set.
func NewClient(channelSecret, channelToken, apiBaseURL string, log logger.Logger) (*Client, error) {
	var opts []linebot.ClientOption
	if apiBaseURL != "" {
		opts = append(opts, linebot.WithEndpointBase(apiBaseURL))
	}
	bot, err := linebot.New(channelSecret, channelToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE Bot client: %w", err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &Client{
		Client: bot,
		log:    log,
	}, nil
}

// PushText sends a single text message to a LINE user with the PushMessage API.
// A rejected push yields appErrors.ErrUpstreamProvider carrying LINE's error body.
func (c *Client) PushText(ctx context.Context, to, text string) error {
	_, err := c.PushMessage(to, linebot.NewTextMessage(text)).WithContext(ctx).Do()
	if err != nil {
		var apiErr *linebot.APIError
		if errors.As(err, &apiErr) && apiErr.Response != nil {
			payload, _ := json.Marshal(apiErr.Response)
			return fmt.Errorf("%w: LINE API Error: %s", appErrors.ErrUpstreamProvider, payload)
		}
		return fmt.Errorf("%w: LINE API Error: %v", appErrors.ErrUpstreamProvider, err)
	}
	c.log.Debug("Successfully sent push message.")
	return nil
}
