/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package log

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"
)

const PROGRESS_INTERVAL = 100 * time.Millisecond

// ProgressInfo is what a runner reports while it works: how many of the
// expected items are done.
type ProgressInfo struct {
	Done  int
	Total int
}

type UpdateFunc func(info ProgressInfo)
type RunnerFunc func(update UpdateFunc) error

type progressState struct {
	lock sync.Mutex
	info ProgressInfo
}

func (s *progressState) updateInfo(info ProgressInfo) {
	s.lock.Lock()
	s.info = info
	s.lock.Unlock()
}

func (s *progressState) renderProgress(out io.Writer, label string, startTime time.Time, final bool) {
	s.lock.Lock()
	info := s.info
	s.lock.Unlock()

	elapsed := math.Round(time.Since(startTime).Seconds()*10) / 10
	fmt.Fprintf(out, "\r%v (%.1fs): %v of %v... ", label, elapsed, info.Done, info.Total)
	if final {
		fmt.Fprintf(out, "done.\n")
	}
}

// GoWithProgress runs runner in a goroutine and redraws a one-line progress
// indicator on out until it returns. The runner's error is returned as is.
func GoWithProgress(out io.Writer, label string, runner RunnerFunc) error {
	done := make(chan error, 1)
	state := progressState{}
	startTime := time.Now()
	state.renderProgress(out, label, startTime, false)

	go func() {
		done <- runner(state.updateInfo)
	}()

	ticker := time.NewTicker(PROGRESS_INTERVAL)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			state.renderProgress(out, label, startTime, true)
			return err
		case <-ticker.C:
			state.renderProgress(out, label, startTime, false)
		}
	}
}
