package homework

// PollState is what the poller remembers between iterations.
type PollState struct {
	LastSeen        int64  // from_date cursor, seconds since epoch
	LastSentMessage string // last message delivered to the chat
}
