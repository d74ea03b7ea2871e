package gateway

import "encoding/json"

// Event names carried in Frame envelopes. Client→server traffic uses only
// EventChatMessage; everything else is server→client.
const (
	EventChatMessage     = "chat message"
	EventLoadHistory     = "load history"
	EventLoadFiles       = "load files"
	EventFileUploaded    = "file uploaded"
	EventRefreshMessages = "refresh messages"
	EventRefreshFiles    = "refresh files"
)

// Frame is the envelope for all messages on the real-time channel.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ChatMessageData is the payload of a "chat message" frame in both
// directions: what the client submits and what is echoed to every session.
type ChatMessageData struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// FileUploadedData is the payload of a "file uploaded" frame. URL is the
// address the blob can be fetched from; Path is its storage key.
type FileUploadedData struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
}
