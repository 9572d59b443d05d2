package domain

import "time"

// Message represents a message resource
type Message struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"creationDate"`
}

// MessageRequest is the client payload for create and update. The identifier
// and creation timestamp are always server-assigned.
type MessageRequest struct {
	Text string `json:"text"`
}
