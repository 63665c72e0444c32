// internal/domain/delivery/delivery.go
package delivery

import "time"

// Kind tells what sort of message a delivery carried.
type Kind string

const (
	KindStatus  Kind = "status"  // homework status or "not found" message
	KindFailure Kind = "failure" // diagnostic about a failed poll
)

// Delivery is one attempt to send a message to the chat.
// Corresponds to the 'notification_deliveries' table.
type Delivery struct {
	ID        string // uuid
	PollID    string // uuid of the poll iteration that produced the message
	ChatID    int64
	Kind      Kind
	Text      string
	Error     string // empty when the message was delivered
	CreatedAt time.Time
}

// Delivered reports whether the message reached the chat.
func (d *Delivery) Delivered() bool {
	return d.Error == ""
}
