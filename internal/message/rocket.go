// Package message builds the chat notification payload.
//
// The wire types match the Rocket.Chat incoming-webhook schema. Two
// construction paths exist: the structured Builder (one message carrying all
// events as attachments) and the template renderer (one rendered body per
// event).
package message

// Message is the webhook payload.
type Message struct {
	Username    string       `json:"username"`
	IconURL     string       `json:"icon_url"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment is one rich-content block representing a single event.
type Attachment struct {
	Title       string  `json:"title"`
	TitleLink   string  `json:"title_link"`
	ImageURL    string  `json:"image_url"`
	MessageLink string  `json:"message_link"`
	Text        string  `json:"text"`
	Fields      []Field `json:"fields"`
}

// Field is a short key/value entry inside an attachment.
type Field struct {
	Short bool   `json:"short"`
	Title string `json:"title"`
	Value string `json:"value"`
}
