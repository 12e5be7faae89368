package client

import (
	"fmt"
	"io"

	"email-campaign/models"
)

// StatusPrinter renders submission status as plain text.
type StatusPrinter struct {
	W io.Writer
}

func (p StatusPrinter) Sending() {
	fmt.Fprintln(p.W, "Campaign status: Sending...")
}

func (p StatusPrinter) Completed(metrics models.CampaignMetrics, totalRecipients int) {
	fmt.Fprintf(p.W, "Campaign Metrics\n"+
		"  Status: %s\n"+
		"  Total Recipients: %d\n"+
		"  Sent: %d\n"+
		"  Failed: %d\n"+
		"  Simulated Opens: %d\n",
		metrics.Status, totalRecipients, metrics.SentCount, metrics.FailedCount, metrics.OpensCount)
}

func (p StatusPrinter) Failed(message string) {
	fmt.Fprintf(p.W, "Error: %s\n", message)
}

func (p StatusPrinter) NetworkError(err error) {
	fmt.Fprintln(p.W, "A network error occurred. Please try again.")
}
