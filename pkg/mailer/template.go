package mailer

import (
	"bytes"
	htmpl "html/template"
	texttpl "text/template"
)

// CommentEmailData feeds the new-comment notification templates.
type CommentEmailData struct {
	AppName       string
	RecipientName string
	CommenterName string
	PostTitle     string
	Content       string
}

const commentSubject = "New comment on your post"

var commentText = texttpl.Must(texttpl.New("comment_text").Parse(
	`Hi {{.RecipientName}},

{{.CommenterName}} commented on "{{.PostTitle}}":

{{.Content}}

-- {{.AppName}}
`))

var commentHTML = htmpl.Must(htmpl.New("comment_html").Parse(
	`<p>Hi {{.RecipientName}},</p>
<p><strong>{{.CommenterName}}</strong> commented on &ldquo;{{.PostTitle}}&rdquo;:</p>
<blockquote>{{.Content}}</blockquote>
<p>&mdash; {{.AppName}}</p>
`))

// RenderComment renders the notification for to.
func RenderComment(to string, d CommentEmailData) (EmailJob, error) {
	var text, html bytes.Buffer
	if err := commentText.Execute(&text, d); err != nil {
		return EmailJob{}, err
	}
	if err := commentHTML.Execute(&html, d); err != nil {
		return EmailJob{}, err
	}
	return EmailJob{To: to, Subject: commentSubject, Text: text.String(), HTML: html.String()}, nil
}
