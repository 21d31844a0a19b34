// spinner.go implements the CLI spinner shown while cdki talks to CloudFormation or the CDK toolkit.
package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// StartSpinner animates a lightweight ASCII spinner next to message until
// the returned stop function runs. Stop prints "[done]" or "[fail]" and is
// safe to call more than once.
func StartSpinner(w io.Writer, message string) func(success bool) {
	frames := []rune{'|', '/', '-', '\\'}
	done := make(chan struct{})
	var once sync.Once
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		idx := 0
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %c", message, frames[idx])
				idx = (idx + 1) % len(frames)
			}
		}
	}()

	return func(success bool) {
		once.Do(func() {
			close(done)
			wg.Wait()
			status := "[done]"
			if !success {
				status = "[fail]"
			}
			fmt.Fprintf(w, "\r%s %s\n", message, status)
		})
	}
}
