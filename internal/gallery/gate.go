package gallery

import (
	"time"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
)

// Gate blocks until the operator presses Enter. The page state it guards
// (sorted, filtered, fully scrolled) cannot be detected reliably, so it is an
// operator-asserted precondition with no timeout.
func Gate(message string) {
	logger.Info("%s", message)
	<-stdinLines()
}

// waitOrContinue sleeps for d or until the operator presses Enter, whichever
// comes first. Returns true when the operator continued early.
func waitOrContinue(d time.Duration) bool {
	select {
	case <-stdinLines():
		return true
	case <-time.After(d):
		return false
	}
}
