package websocket

// Message defines the structure for change notifications pushed to clients,
// e.g. {"action": "post.created", "payload": {...}}.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}
