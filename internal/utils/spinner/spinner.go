package spinner

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// StartSpinner draws a spinner with message on stderr and returns the
// function that stops and clears it. Nothing is drawn when stderr is not a
// terminal, so piped output stays clean.
//
//	stop := spinner.StartSpinner("Fetching")
//	items, err := importer.Resolve(ctx, url)
//	stop()
func StartSpinner(message string) func() {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithWriter(os.Stderr),
		spinner.WithSuffix(" "+message),
		spinner.WithHiddenCursor(true),
	)
	s.Start()

	return s.Stop
}
