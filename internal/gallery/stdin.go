package gallery

import (
	"bufio"
	"os"
	"sync"
)

var (
	stdinOnce sync.Once
	stdinCh   chan string
)

// stdinLines hands out the channel fed by the single goroutine that owns
// os.Stdin. Both the checkpoint gate and the batch pause receive from it, so
// an Enter pressed during a pause is consumed by whichever wait is active.
// The channel closes on EOF, which unblocks every waiter.
func stdinLines() <-chan string {
	stdinOnce.Do(func() {
		stdinCh = make(chan string)
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				stdinCh <- scanner.Text()
			}
			close(stdinCh)
		}()
	})
	return stdinCh
}
