package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/usecase"
)

// newMailCommand creates the mail command with its subcommands.
func newMailCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Agent message inbox",
	}

	cmd.AddCommand(
		newMailSendCommand(c),
		newMailInboxCommand(c),
		newMailReadCommand(c),
	)

	return cmd
}

func newMailSendCommand(c *app.Container) *cobra.Command {
	var opts struct {
		From    string
		Subject string
	}

	cmd := &cobra.Command{
		Use:   "send <receiver> <body>",
		Short: "Send a message to an agent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.SendMailUseCase().Execute(cmd.Context(), usecase.SendMailInput{
				Sender:   opts.From,
				Receiver: args[0],
				Subject:  opts.Subject,
				Body:     args[1],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sent message #%d to %s\n", id, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "Sender name (default: user)")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "Message subject")

	return cmd
}

func newMailInboxCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msgs, err := c.InboxUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Inbox is empty.")
				return nil
			}
			printInbox(cmd.OutOrStdout(), msgs)
			return nil
		},
	}
}

func newMailReadCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Read a message and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid message id %q", args[0])
			}
			msg, err := c.ReadMailUseCase().Execute(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "From: %s\nTo: %s\nSubject: %s\nDate: %s\n\n%s\n",
				msg.Sender, msg.Receiver, msg.Subject, msg.Time.Format("2006-01-02 15:04:05"), msg.Body)
			return nil
		},
	}
}

// printInbox prints messages in TSV format.
func printInbox(w io.Writer, msgs []domain.Message) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tFROM\tTO\tSUBJECT")
	for _, m := range msgs {
		subject := m.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Status, m.Sender, m.Receiver, subject)
	}
	_ = tw.Flush()
}
