package app

import (
	"errors"
	"fmt"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// Notifier delivers messages to the single configured chat.
type Notifier struct {
	client domainTelegram.Client
	chatID int64
	logger *logrus.Entry
}

func NewNotifier(client domainTelegram.Client, chatID int64, logger *logrus.Entry) *Notifier {
	return &Notifier{
		client: client,
		chatID: chatID,
		logger: logger.WithField("chat_id", chatID),
	}
}

// ChatID returns the destination chat.
func (n *Notifier) ChatID() int64 {
	return n.chatID
}

// Notify sends text to the chat. Every failure wraps telegram.ErrSend.
func (n *Notifier) Notify(text string) error {
	n.logger.Debug("Sending message to Telegram")

	if err := n.client.SendMessage(n.chatID, text, nil); err != nil {
		if !errors.Is(err, domainTelegram.ErrSend) {
			err = fmt.Errorf("%w: %w", domainTelegram.ErrSend, err)
		}
		return err
	}

	n.logger.Debug("Message sent to Telegram")
	return nil
}
