package models

import "time"

// Message is a single chat message record. The store assigns ID and
// CreatedAt on insert; records are immutable except by admin deletion.
type Message struct {
	ID        int64     `json:"id,string"`
	Username  string    `json:"username"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
