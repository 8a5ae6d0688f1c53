package ooba

import "time"

// Message is one turn of a chat conversation.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time // local bookkeeping only, never sent to the server
}
