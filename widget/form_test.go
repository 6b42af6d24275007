package widget

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/tablekit/errors"
)

func mailBatch(t *testing.T) (*Batch, *Text, *TextArea) {
	t.Helper()
	to := Must(NewText(TextConfig{Label: "To"}))
	content := Must(NewTextArea(TextConfig{Label: "Content"}))
	b, err := NewBatch("**mail**\n\n{to}\n\n{content}", map[string]Widget{"to": to, "content": content})
	if err != nil {
		t.Fatal(err)
	}
	return b, to, content
}

func TestBatchPlaceholders(t *testing.T) {
	to := Must(NewText(TextConfig{}))
	if _, err := NewBatch("{to} {cc}", map[string]Widget{"to": to}); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing widget error = %v", err)
	}
	if _, err := NewBatch("{to}", map[string]Widget{"to": to, "bcc": to}); err == nil {
		t.Error("unused widget accepted")
	}

	b, toField, _ := mailBatch(t)
	_ = toField.Set("a@example.com")
	if diff := cmp.Diff(map[string]string{"to": "a@example.com", "content": ""}, b.Values()); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	h := mustHTML(t, b)
	if strings.Contains(h, "{to}") || !strings.Contains(h, `id="`+toField.ID()+`"`) || !strings.Contains(h, "<strong>mail</strong>") {
		t.Errorf("batch html = %s", h)
	}
	if diff := cmp.Diff([]string{"content", "to"}, b.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestFormSubmit(t *testing.T) {
	b, to, content := mailBatch(t)
	var got map[string]string
	form, err := b.Form(FormConfig{
		Required: []string{"to"},
		OnSubmit: func(_ context.Context, v map[string]string) error {
			got = v
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if form.Value() != nil {
		t.Error("unsubmitted form has a value")
	}

	if err := form.Submit(context.Background()); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("blank required field error = %v", err)
	}
	if got != nil {
		t.Error("OnSubmit called for an invalid form")
	}
	if h := mustHTML(t, form); !strings.Contains(h, `role="alert"`) || !strings.Contains(h, "to: is required") {
		t.Errorf("error not rendered: %s", h)
	}

	_ = to.Set("a@example.com")
	_ = content.Set("hi")
	submitted := 0
	form.OnSubmit(func(map[string]string) { submitted++ })
	if err := form.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"to": "a@example.com", "content": "hi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OnSubmit values (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, form.Value()); diff != "" {
		t.Errorf("form value (-want +got):\n%s", diff)
	}
	if submitted != 1 || form.Err() != nil {
		t.Errorf("submitted = %d, err = %v", submitted, form.Err())
	}
	if h := mustHTML(t, form); strings.Contains(h, `role="alert"`) || !strings.Contains(h, ">Submit</button>") {
		t.Errorf("form html = %s", h)
	}
}

func TestFormSubmitFailureKeepsLastValue(t *testing.T) {
	b, to, _ := mailBatch(t)
	fail := false
	form := Must(b.Form(FormConfig{
		Validate: func(v map[string]string) error {
			if !strings.Contains(v["to"], "@") {
				return stderrors.New("to needs an address")
			}
			return nil
		},
		OnSubmit: func(context.Context, map[string]string) error {
			if fail {
				return errors.ExternalServiceError("resend", stderrors.New("boom"))
			}
			return nil
		},
	}))
	_ = to.Set("x")
	if err := form.Submit(context.Background()); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("custom validation error = %v", err)
	}
	_ = to.Set("a@example.com")
	if err := form.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	fail = true
	_ = to.Set("b@example.com")
	if err := form.Submit(context.Background()); !errors.HasCode(err, errors.ErrCodeExternalService) {
		t.Errorf("submit error = %v", err)
	}
	v, ok := form.Submitted()
	if !ok || v["to"] != "a@example.com" {
		t.Errorf("Submitted = %v, %v", v, ok)
	}
}

func TestFormConfigErrors(t *testing.T) {
	b, _, _ := mailBatch(t)
	if _, err := b.Form(FormConfig{Required: []string{"subject"}}); err == nil {
		t.Error("required field without widget accepted")
	}
	if _, err := b.Form(FormConfig{Kind: "loud"}); err == nil {
		t.Error("unknown kind accepted")
	}
}
