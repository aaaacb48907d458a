// Optional Telegram notifications. A nil Reporter is a no-op so the pipeline
// runs unchanged without credentials.

package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Reporter struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New returns nil (and no error) when credentials are absent.
func New(token string, chatID int64) (*Reporter, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Reporter{api: api, chatID: chatID}, nil
}

// QueryDone reports the outcome of one query.
func (r *Reporter) QueryDone(query, storePath string, runErr error) error {
	if r == nil {
		return nil
	}

	var text string
	if runErr != nil {
		text = fmt.Sprintf("❌ %s aborted: %v", query, runErr)
	} else {
		text = fmt.Sprintf("✅ %s finished. Records saved to %s", query, storePath)
	}

	msg := tgbotapi.NewMessage(r.chatID, text)
	_, err := r.api.Send(msg)
	return err
}
