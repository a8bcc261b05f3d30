package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	log "github.com/sirupsen/logrus"
)

// printMarkdown renders markdown for the terminal, or prints it as is when it cannot.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.WithError(err).Debug("cannot render markdown")
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
