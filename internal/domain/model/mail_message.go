package model

// MailMessage is a transport independent email. It travels as JSON on the mail queue.
type MailMessage struct {
	From        string           `json:"from,omitempty"`
	To          []string         `json:"to"`
	Subject     string           `json:"subject"`
	Body        string           `json:"body"`
	Attachments []MailAttachment `json:"attachments,omitempty"`
}

type MailAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}
