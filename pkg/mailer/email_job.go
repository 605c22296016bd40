package mailer

// EmailJob is a rendered email ready to hand to Mailgun.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

const CommentCreated = "comment_created"

// CommentCreatedJob is the JSON payload put on the RabbitMQ queue when a
// comment is added. The worker resolves the post author and renders the email.
type CommentCreatedJob struct {
	Type      string `json:"type"`
	PostID    string `json:"post_id"`
	CommentID string `json:"comment_id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
}
