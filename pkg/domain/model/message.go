package model

// LinkButton is a labeled link rendered as a clickable action in the chat message
type LinkButton struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Message is the outgoing chat message. It is built once per event and discarded after sending.
type Message struct {
	WebhookURL string `json:"-" masq:"secret"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Buttons    []LinkButton `json:"buttons"`
}

// NewMessage creates a message bound to the destination webhook URL
func NewMessage(webhookURL string) *Message {
	return &Message{WebhookURL: webhookURL}
}

// AddLinkButton appends a link button
func (m *Message) AddLinkButton(label, url string) {
	m.Buttons = append(m.Buttons, LinkButton{Label: label, URL: url})
}

// Body is the formatted (not yet escaped) description of an event
type Body struct {
	Text       string
	Buttons    []LinkButton `json:"buttons"`
	Suppressed bool // true when the message is built but must not be transmitted
}

// ProjectCardDetail holds what the GitHub API told us about a project card
type ProjectCardDetail struct {
	ProjectName string
	ColumnName  string
	IssueTitle  string
	IssueURL    string
	HasIssue    bool
}
