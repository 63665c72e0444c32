// internal/infra/telegram/client.go
package telegram

import (
	"fmt"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

var _ domainTelegram.Client = (*TelebotAdapter)(nil)

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified chat.
// Bot API rejections and network failures are both reported as ErrSend.
func (tba *TelebotAdapter) SendMessage(chatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.Chat{ID: chatID} // Private, group or channel chat
	if _, err := tba.bot.Send(recipient, text, options); err != nil {
		return fmt.Errorf("%w: chat %d: %v", domainTelegram.ErrSend, chatID, err)
	}
	return nil
}
