package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"email-campaign/client"
	"email-campaign/config"
	"email-campaign/logger"
	"email-campaign/preview"
	"email-campaign/recipients"
	"email-campaign/session"
)

var (
	campaignCSV     string
	campaignSubject string
	campaignMessage string
	previewDir      string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Load recipients from a CSV and submit a campaign",
	RunE:  runSend,
}

var draftCmd = &cobra.Command{
	Use:   "draft <prompt>",
	Short: "Ask the server to draft a subject and message",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDraft,
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Interactively build and send a campaign",
	RunE:  runCompose,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Write the messages a campaign would send as .eml files",
	RunE:  runPreview,
}

func init() {
	for _, cmd := range []*cobra.Command{sendCmd, previewCmd} {
		cmd.Flags().StringVar(&campaignCSV, "csv", "", "CSV file with an email column (required)")
		cmd.Flags().StringVar(&campaignSubject, "subject", "", "subject line")
		cmd.Flags().StringVar(&campaignMessage, "message", "", "message body")
		cmd.MarkFlagRequired("csv")
	}
	previewCmd.Flags().StringVar(&previewDir, "out", "preview", "output directory")
}

func cliSetup() (*config.Config, *logger.Logger, *client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.NewWithWriter(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	c := client.New(client.Config{
		BaseURL: cfg.GetBaseURL(),
		Timeout: cfg.Client.Timeout,
	})
	return cfg, log, c, nil
}

// loadRecipients imports a CSV into a fresh store and prints a summary.
func loadRecipients(cmd *cobra.Command, log *logger.Logger, path string) (*recipients.Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	store := recipients.NewStore(nil, log)
	result, err := store.ImportCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d recipient(s)", result.Imported)
	if n := len(result.Rejected); n > 0 {
		fmt.Fprintf(out, ", %d invalid row(s) skipped", n)
	}
	if n := len(result.Duplicates); n > 0 {
		fmt.Fprintf(out, ", %d duplicate(s) ignored", n)
	}
	fmt.Fprintln(out)
	return store, nil
}

func runSend(cmd *cobra.Command, args []string) error {
	_, log, c, err := cliSetup()
	if err != nil {
		return err
	}

	store, err := loadRecipients(cmd, log, campaignCSV)
	if err != nil {
		return err
	}

	submitter := client.NewSubmitter(c, client.StatusPrinter{W: cmd.OutOrStdout()})
	_, err = submitter.Submit(cmd.Context(), campaignSubject, campaignMessage, store.List())

	var invalid *client.ValidationError
	if errors.As(err, &invalid) {
		return errors.New(invalid.Message)
	}
	return err
}

func runDraft(cmd *cobra.Command, args []string) error {
	_, _, c, err := cliSetup()
	if err != nil {
		return err
	}

	draft, err := c.GenerateDraft(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s\n", draft.Subject, draft.Message)
	return nil
}

func runCompose(cmd *cobra.Command, args []string) error {
	_, log, c, err := cliSetup()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	store := recipients.NewStore(recipients.TextRenderer{W: out}, log)
	submitter := client.NewSubmitter(c, client.StatusPrinter{W: out})

	return session.New(store, c, submitter, out, log).Run(cmd.Context(), cmd.InOrStdin())
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, log, _, err := cliSetup()
	if err != nil {
		return err
	}

	if strings.TrimSpace(campaignSubject) == "" || strings.TrimSpace(campaignMessage) == "" {
		return errors.New(client.ErrMissingContent.Message)
	}

	store, err := loadRecipients(cmd, log, campaignCSV)
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		return errors.New(client.ErrNoRecipients.Message)
	}

	composer, err := preview.NewComposer(cfg.Campaign.From)
	if err != nil {
		return err
	}

	paths, err := composer.WriteAll(previewDir, campaignSubject, campaignMessage, store.List())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d message(s) to %s\n", len(paths), previewDir)
	return nil
}
