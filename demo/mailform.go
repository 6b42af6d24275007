package demo

import (
	"context"
	"sync"

	"github.com/kbukum/tablekit/mail"
	"github.com/kbukum/tablekit/notebook"
	"github.com/kbukum/tablekit/widget"
)

const mailTemplate = `**tablekit mail**

{RESEND_API_KEY}

{from_}

{to}

{subject}

{content}`

// MailDemo is a form that sends its content as an email.
type MailDemo struct {
	*notebook.Notebook
	Form *widget.Form

	client *mail.Client
	mu     sync.Mutex
	sent   []string
}

// Sent returns the ids of the messages sent so far.
func (d *MailDemo) Sent() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.sent...)
}

// Submit submits the form and refreshes the notebook, so a failure shows
// next to the fields.
func (d *MailDemo) Submit(ctx context.Context) error {
	err := d.Form.Submit(ctx)
	d.Rerun(ctx)
	return err
}

func (d *MailDemo) send(ctx context.Context, values map[string]string) error {
	res, err := d.client.Send(ctx, mail.ParamsFromForm(values))
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.sent = append(d.sent, res.ID)
	d.mu.Unlock()
	return nil
}

func (d *MailDemo) status(context.Context) (any, error) {
	sent := d.Sent()
	if len(sent) == 0 {
		return widget.MD("No message sent yet."), nil
	}
	return widget.MD("Sent **" + sent[len(sent)-1] + "**"), nil
}

// MailForm builds the form. A nil client sends with the key typed into
// the form.
func MailForm(ctx context.Context, client *mail.Client) (*MailDemo, error) {
	if client == nil {
		c, err := mail.NewClient(mail.Config{})
		if err != nil {
			return nil, err
		}
		client = c
	}
	key, err := widget.NewText(widget.TextConfig{Label: mail.FieldAPIKey, Kind: widget.KindPassword})
	if err != nil {
		return nil, err
	}
	from, err := widget.NewText(widget.TextConfig{Label: "From", Kind: widget.KindEmail})
	if err != nil {
		return nil, err
	}
	to, err := widget.NewText(widget.TextConfig{Label: "To", Placeholder: "a@example.com, b@example.com"})
	if err != nil {
		return nil, err
	}
	subject, err := widget.NewText(widget.TextConfig{Label: "Subject", MaxLength: 998})
	if err != nil {
		return nil, err
	}
	content, err := widget.NewTextArea(widget.TextConfig{Rows: 8})
	if err != nil {
		return nil, err
	}
	batch, err := widget.NewBatch(mailTemplate, map[string]widget.Widget{
		mail.FieldAPIKey:  key,
		mail.FieldFrom:    from,
		mail.FieldTo:      to,
		mail.FieldSubject: subject,
		mail.FieldContent: content,
	})
	if err != nil {
		return nil, err
	}

	d := &MailDemo{Notebook: notebook.New("Mail"), client: client}
	required := []string{mail.FieldFrom, mail.FieldTo, mail.FieldSubject, mail.FieldContent}
	if !client.Configured() {
		required = append([]string{mail.FieldAPIKey}, required...)
	}
	d.Form, err = batch.Form(widget.FormConfig{
		SubmitLabel: "Send",
		Clearable:   true,
		Required:    required,
		Validate: func(values map[string]string) error {
			return mail.ParamsFromForm(values).Validate()
		},
		OnSubmit: d.send,
	})
	if err != nil {
		return nil, err
	}
	if err := d.Show(ctx, "form", d.Form, d.Form); err != nil {
		return nil, err
	}
	if err := d.Add(ctx, "status", d.status, d.Form); err != nil {
		return nil, err
	}
	return d, nil
}
