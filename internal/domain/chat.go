package domain

// ChatMessage is one turn of an Eco-Guía conversation, as exchanged with
// the client. Sender is either "user" or "ai".
type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
