// Package session implements the interactive campaign composer: explicit
// command handlers over a recipient store, a draft source and a submitter.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"email-campaign/client"
	"email-campaign/logger"
	"email-campaign/models"
	"email-campaign/recipients"
)

const invalidEmailMessage = "Please enter a valid email address."

// DraftSource produces a subject and message from a free-text prompt.
type DraftSource interface {
	GenerateDraft(ctx context.Context, prompt string) (*models.Draft, error)
}

// CampaignSubmitter sends the composed campaign.
type CampaignSubmitter interface {
	Submit(ctx context.Context, subject, message string, list []models.Recipient) (*models.SendResponse, error)
}

type Session struct {
	store     *recipients.Store
	drafts    DraftSource
	submitter CampaignSubmitter
	out       io.Writer
	log       *logger.Logger

	subject string
	message string
}

func New(store *recipients.Store, drafts DraftSource, submitter CampaignSubmitter, out io.Writer, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		store:     store,
		drafts:    drafts,
		submitter: submitter,
		out:       out,
		log:       log.WithComponent("session"),
	}
}

func (s *Session) Subject() string { return s.subject }
func (s *Session) Message() string { return s.message }

// LoadCSV replaces the recipients with the contents of a CSV file.
func (s *Session) LoadCSV(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	result, err := s.store.ImportCSV(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Loaded %d recipient(s) from %s.\n", result.Imported, path)
	for _, rejected := range result.Rejected {
		fmt.Fprintf(s.out, "  skipped row %d: %v\n", rejected.Row, rejected.Reason)
	}
	if n := len(result.Duplicates); n > 0 {
		fmt.Fprintf(s.out, "  %d duplicate email(s) ignored\n", n)
	}
	return nil
}

// Add validates manual input before it reaches the store.
func (s *Session) Add(email, firstName, lastName string) error {
	recipient, err := recipients.NewRecipient(email, firstName, lastName)
	if err != nil {
		fmt.Fprintln(s.out, invalidEmailMessage)
		return err
	}
	return s.store.Add(recipient)
}

func (s *Session) Remove(index int) error {
	return s.store.RemoveAt(index)
}

func (s *Session) List() {
	s.store.Render()
}

func (s *Session) SetSubject(subject string) {
	s.subject = subject
}

func (s *Session) SetMessage(message string) {
	s.message = message
}

// Draft replaces subject and message with a generated draft.
func (s *Session) Draft(ctx context.Context, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		fmt.Fprintln(s.out, "Please enter a prompt for the AI.")
		return nil
	}

	fmt.Fprintln(s.out, "Generating draft...")
	draft, err := s.drafts.GenerateDraft(ctx, prompt)
	if err != nil {
		s.log.Error().Err(err).Msg("draft request failed")
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(s.out, "Error: %s\n", apiErr.Message)
		} else {
			fmt.Fprintln(s.out, "A network error occurred. Please try again.")
		}
		return err
	}

	s.subject = draft.Subject
	s.message = draft.Message
	fmt.Fprintf(s.out, "Subject: %s\n\n%s\n", s.subject, s.message)
	return nil
}

// Send submits the campaign. Local validation problems are printed, not returned.
func (s *Session) Send(ctx context.Context) error {
	_, err := s.submitter.Submit(ctx, s.subject, s.message, s.store.List())

	var invalid *client.ValidationError
	if errors.As(err, &invalid) {
		fmt.Fprintln(s.out, invalid.Message)
		return nil
	}
	return err
}

const helpText = `Commands:
  load <file.csv>              replace recipients with a CSV (email, first_name, last_name)
  add <email> [first] [last]   add one recipient
  remove <index>               remove the recipient at index
  list                         show recipients
  subject <text>               set the subject line
  message <text>               set the message body
  draft <prompt>               let the AI write subject and message
  show                         print subject and message
  send                         send the campaign (simulated)
  help                         this text
  quit                         leave`

// Run reads one command per line from in until EOF or quit.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Fprintln(s.out, `Type "help" for commands.`)
	s.List()

	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := s.Execute(ctx, scanner.Text())
		if err != nil {
			s.log.Debug().Err(err).Msg("command failed")
		}
		if quit {
			return nil
		}
	}

	fmt.Fprintln(s.out)
	return scanner.Err()
}

// Execute runs a single command line. It reports whether the session should end.
func (s *Session) Execute(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(command) {
	case "load":
		if rest == "" {
			fmt.Fprintln(s.out, "usage: load <file.csv>")
			return false, nil
		}
		err = s.LoadCSV(rest)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}

	case "add":
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			fmt.Fprintln(s.out, invalidEmailMessage)
			return false, recipients.ErrInvalidEmail
		}
		var first, last string
		if len(fields) > 1 {
			first = fields[1]
		}
		if len(fields) > 2 {
			last = strings.Join(fields[2:], " ")
		}
		err = s.Add(fields[0], first, last)

	case "remove", "rm":
		index, convErr := strconv.Atoi(rest)
		if convErr != nil {
			fmt.Fprintln(s.out, "usage: remove <index>")
			return false, convErr
		}
		err = s.Remove(index)
		if err != nil {
			fmt.Fprintf(s.out, "No recipient at index %d.\n", index)
		}

	case "list", "ls":
		s.List()

	case "subject":
		s.SetSubject(rest)

	case "message":
		s.SetMessage(rest)

	case "draft":
		err = s.Draft(ctx, rest)

	case "show":
		fmt.Fprintf(s.out, "Subject: %s\n\n%s\n", s.subject, s.message)

	case "send":
		err = s.Send(ctx)

	case "help", "?":
		fmt.Fprintln(s.out, helpText)

	case "quit", "exit":
		return true, nil

	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type \"help\" for commands.\n", command)
	}

	return false, err
}
