package gallery

import (
	"time"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
)

// State is the controller's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// Options configures one controller run.
type Options struct {
	// StartIndex is the 1-based position of the first tile to process.
	// Anything past the tile count yields a run that processes nothing.
	StartIndex int
	// BatchSize is how many tiles are processed between pauses.
	BatchSize int
	// BatchWait caps how long a pause lasts when the operator stays silent.
	BatchWait time.Duration
	// PostClickWait throttles successive tiles after a successful click.
	PostClickWait time.Duration
	// ContinueOnError keeps the run going past failed tiles. When false, the
	// first tile failure aborts the run.
	ContinueOnError bool
}

// Action triggers the download for the tile at the given 1-based position.
type Action func(pos int) error

// Stats summarizes a finished run.
type Stats struct {
	Processed int
	Clicked   int
	Failed    []int
	Batches   int
	Pauses    int
}

// Controller walks the tile sequence in fixed-size batches, pausing between
// batches until the wait elapses or the operator continues early. Progress is
// not revisited within a run; resuming a later run is a new StartIndex.
type Controller struct {
	opts  Options
	state State

	// Sleep and Pause are replaceable so tests drive the controller without
	// real time or a terminal. Pause returns true on an early continue.
	Sleep func(time.Duration)
	Pause func(time.Duration) bool

	// OnTile, when set, runs after every processed tile (failed or not).
	OnTile func(pos int)
}

func NewController(opts Options) *Controller {
	if opts.StartIndex < 1 {
		opts.StartIndex = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}
	return &Controller{
		opts:  opts,
		state: StateIdle,
		Sleep: time.Sleep,
		Pause: waitOrContinue,
	}
}

// State reports the controller's current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Run processes tiles [StartIndex, total] in ascending order, one batch at a
// time. Per-tile failures are logged and skipped unless ContinueOnError is
// off, in which case the failing error is returned and the run aborts.
func (c *Controller) Run(total int, act Action) (Stats, error) {
	var stats Stats

	c.state = StateRunning
	start := c.opts.StartIndex
	if start > total {
		c.state = StateDone
		return stats, nil
	}

	for pos := start; pos <= total; pos++ {
		err := act(pos)
		stats.Processed++

		if err != nil {
			stats.Failed = append(stats.Failed, pos)
			if !c.opts.ContinueOnError {
				logger.Error("[%d/%d] %v", pos, total, err)
				c.state = StateAborted
				return stats, err
			}
			logger.Warn("[%d/%d] %v; continuing.", pos, total, err)
		} else {
			stats.Clicked++
			logger.Info("[%d/%d] Triggered original-quality download", pos, total)
			if c.opts.PostClickWait > 0 {
				c.Sleep(c.opts.PostClickWait)
			}
		}

		if c.OnTile != nil {
			c.OnTile(pos)
		}

		if (pos-start+1)%c.opts.BatchSize == 0 {
			stats.Batches++
			if pos < total {
				stats.Pauses++
				c.state = StatePaused
				logger.Info("Completed batch of %d. Waiting %s or press Enter to continue now...",
					c.opts.BatchSize, c.opts.BatchWait)
				if c.Pause(c.opts.BatchWait) {
					logger.Info("Continuing to next batch.")
				}
				c.state = StateRunning
			}
		}
	}

	if (total-start+1)%c.opts.BatchSize != 0 {
		stats.Batches++
	}
	c.state = StateDone
	return stats, nil
}
