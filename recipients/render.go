package recipients

import (
	"fmt"
	"io"

	"email-campaign/models"
)

const emptyListMessage = "No recipients added yet."

// TextRenderer prints one line per recipient with the command that removes it.
type TextRenderer struct {
	W io.Writer
}

func (r TextRenderer) Render(list []models.Recipient) {
	if len(list) == 0 {
		fmt.Fprintln(r.W, emptyListMessage)
		return
	}

	for i, recipient := range list {
		fmt.Fprintf(r.W, "[%d] %s <%s>  (remove %d)\n", i, recipient.DisplayName(), recipient.Email, i)
	}
}
