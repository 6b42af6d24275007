package mail

import (
	"html"
	"strings"

	"github.com/kbukum/tablekit/validation"
)

// Form field names understood by ParamsFromForm.
const (
	FieldAPIKey  = "RESEND_API_KEY"
	FieldFrom    = "from_"
	FieldTo      = "to"
	FieldSubject = "subject"
	FieldContent = "content"
)

// SendParams is the body of a send request.
type SendParams struct {
	From    string   `json:"from" validate:"required,email"`
	To      []string `json:"to" validate:"required,min=1,max=50,dive,email"`
	Subject string   `json:"subject" validate:"required,max=998"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo []string `json:"reply_to,omitempty" validate:"omitempty,dive,email"`

	// APIKey overrides the client key for this request.
	APIKey string `json:"-"`
}

// Validate checks the addresses and the subject.
func (p SendParams) Validate() error {
	if err := validation.Validate(p); err != nil {
		return err
	}
	return validation.New().
		Custom(p.HTML != "" || p.Text != "", "html", "html or text is required").
		Err()
}

// SendResult is the response of a successful send.
type SendResult struct {
	ID string `json:"id"`
}

// ParamsFromForm maps submitted form values onto SendParams. The recipient
// list is split on commas, and the content is escaped with line breaks
// kept as <br>.
func ParamsFromForm(values map[string]string) SendParams {
	content := html.EscapeString(values[FieldContent])
	content = strings.ReplaceAll(strings.ReplaceAll(content, "\r\n", "\n"), "\n", "<br>")
	return SendParams{
		From:    strings.TrimSpace(values[FieldFrom]),
		To:      validation.SplitAddresses(values[FieldTo]),
		Subject: values[FieldSubject],
		HTML:    content,
		APIKey:  strings.TrimSpace(values[FieldAPIKey]),
	}
}
