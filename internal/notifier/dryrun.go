package notifier

import (
	"fmt"
	"io"
	"os"
)

// DryRunNotifier prints the alert that would be sent without delivering it.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to stdout.
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{out: os.Stdout}
}

// Notify prints the subject and composed body.
func (n *DryRunNotifier) Notify(res Result) error {
	fmt.Fprintf(n.out, "--- Notification (dry run) ---\n")
	fmt.Fprintf(n.out, "To: %s\n", res.Request.ReceiverEmail)
	fmt.Fprintf(n.out, "Subject: %s\n\n", Subject)
	fmt.Fprintln(n.out, ComposeMessage(res))
	return nil
}
