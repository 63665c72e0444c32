package telegram

import (
	"errors"

	"gopkg.in/telebot.v3"
)

// ErrSend marks a failure to deliver a message through the bot API.
// The poller must never report it by sending another message.
var ErrSend = errors.New("failed to send telegram message")

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	SendMessage(chatID int64, text string, options *telebot.SendOptions) error
}
