package mail

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/plannerhq/taskplanner/task"
)

// Subjects for the two message kinds.
const (
	VerificationSubject = "Verify subscription to Task Planner"
	ReminderSubject     = "Task Planner - Pending Tasks Reminder"
)

// Composer builds the HTML bodies for verification and reminder emails.
// Links embedded in the messages are rooted at BaseURL.
type Composer struct {
	baseURL   string
	templates *template.Template
}

// NewComposer creates a Composer rooted at baseURL.
func NewComposer(baseURL string) *Composer {
	return &Composer{
		baseURL:   strings.TrimRight(baseURL, "/"),
		templates: newMessageTemplates(),
	}
}

// VerificationMessage produces the HTML body asking email's owner to
// confirm the subscription by following the embedded link.
func (c *Composer) VerificationMessage(email, code string) (string, error) {
	link := c.baseURL + "/verify?email=" + url.QueryEscape(email) + "&code=" + url.QueryEscape(code)

	var builder strings.Builder
	err := c.templates.ExecuteTemplate(&builder, "verification", verificationData{
		Link: link,
	})
	if err != nil {
		return "", fmt.Errorf("render verification message: %w", err)
	}
	return builder.String(), nil
}

// ReminderMessage produces the HTML body listing the pending task names,
// with an unsubscribe link for email.
func (c *Composer) ReminderMessage(email string, pending []task.Task) (string, error) {
	link := c.baseURL + "/unsubscribe?email=" + url.QueryEscape(email)

	names := make([]string, 0, len(pending))
	for _, t := range pending {
		names = append(names, t.Name)
	}

	var builder strings.Builder
	err := c.templates.ExecuteTemplate(&builder, "reminder", reminderData{
		Tasks:           names,
		UnsubscribeLink: link,
	})
	if err != nil {
		return "", fmt.Errorf("render reminder message: %w", err)
	}
	return builder.String(), nil
}

type verificationData struct {
	Link string
}

type reminderData struct {
	Tasks           []string
	UnsubscribeLink string
}

func newMessageTemplates() *template.Template {
	templates := template.New("messages")
	template.Must(templates.New("verification").Parse(verificationTemplate))
	template.Must(templates.New("reminder").Parse(reminderTemplate))
	return templates
}

const verificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Verify Your Subscription</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: #f8f9fa; padding: 30px; border-radius: 10px; border: 1px solid #dee2e6;">
        <h2 style="color: #007bff; text-align: center; margin-bottom: 30px;">Task Planner - Email Verification</h2>
        <p>Click the link below to verify your subscription to Task Planner:</p>
        <p style="text-align: center; margin: 30px 0;">
            <a id="verification-link" href="{{.Link}}" style="background-color: #007bff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">Verify Subscription</a>
        </p>
        <p style="color: #666; font-size: 14px; margin-top: 30px;">If you did not request this verification, please ignore this email.</p>
    </div>
</body>
</html>`

const reminderTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Task Reminder</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: #f8f9fa; padding: 30px; border-radius: 10px; border: 1px solid #dee2e6;">
        <h2 style="color: #007bff; text-align: center; margin-bottom: 30px;">Pending Tasks Reminder</h2>
        <p>Here are the current pending tasks:</p>
        <ul style="list-style-type: none; padding: 0; margin: 20px 0;">
{{- range .Tasks}}
            <li style="margin: 8px 0; padding: 8px; background-color: #f8f9fa; border-left: 3px solid #007bff;">{{.}}</li>
{{- end}}
        </ul>
        <hr style="border: none; height: 1px; background-color: #dee2e6; margin: 30px 0;">
        <p style="text-align: center; margin-top: 30px;">
            <a id="unsubscribe-link" href="{{.UnsubscribeLink}}" style="color: #6c757d; font-size: 14px; text-decoration: none;">Unsubscribe from notifications</a>
        </p>
    </div>
</body>
</html>`
