package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/tablekit/mail"
)

var mailFlags struct {
	from        string
	to          string
	subject     string
	content     string
	contentFile string
}

func newMailCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Send an email through Resend",
		Long: "Send an email through Resend with the configured API key\n" +
			"(resend.api_key or TABLEKIT_RESEND_API_KEY). Content is sent as escaped\n" +
			"HTML with line breaks kept.",
		Args: cobra.NoArgs,
		RunE: a.runMail,
	}
	f := cmd.Flags()
	f.StringVar(&mailFlags.from, "from", "", "sender address (default: resend.from)")
	f.StringVar(&mailFlags.to, "to", "", "comma separated recipients")
	f.StringVar(&mailFlags.subject, "subject", "", "subject line")
	f.StringVar(&mailFlags.content, "content", "", "message text")
	f.StringVar(&mailFlags.contentFile, "content-file", "", "read the message text from a file")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	cmd.MarkFlagsOneRequired("content", "content-file")
	return cmd
}

func (a *app) runMail(cmd *cobra.Command, _ []string) error {
	content := mailFlags.content
	if mailFlags.contentFile != "" {
		b, err := os.ReadFile(mailFlags.contentFile)
		if err != nil {
			return err
		}
		content = string(b)
	}
	client, err := a.mailClient()
	if err != nil {
		return err
	}
	params := mail.ParamsFromForm(map[string]string{
		mail.FieldFrom:    mailFlags.from,
		mail.FieldTo:      mailFlags.to,
		mail.FieldSubject: mailFlags.subject,
		mail.FieldContent: content,
	})
	res, err := client.Send(cmd.Context(), params)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n", res.ID)
	return err
}
