package runner

import (
	"context"
	"strings"
	"sync"
)

// Response is a scripted result for Recorder.
type Response struct {
	Output []byte
	Err    error
	// Do runs before the response is returned; tests use it to emulate
	// side effects such as a generator creating files.
	Do func(c Cmd) error
}

// Recorder is a Runner that records every command instead of executing it.
// Responses are matched by command-line prefix; the longest prefix wins.
type Recorder struct {
	mu        sync.Mutex
	Commands  []Cmd
	responses map[string]Response
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{responses: make(map[string]Response)}
}

// On registers resp for every command whose String() starts with prefix.
func (r *Recorder) On(prefix string, resp Response) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[prefix] = resp
	return r
}

// Lines returns the recorded commands rendered as strings.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		lines[i] = c.String()
	}
	return lines
}

func (r *Recorder) record(c Cmd) Response {
	r.mu.Lock()
	r.Commands = append(r.Commands, c)
	line := c.String()
	var (
		best  Response
		bestN = -1
	)
	for prefix, resp := range r.responses {
		if strings.HasPrefix(line, prefix) && len(prefix) > bestN {
			best, bestN = resp, len(prefix)
		}
	}
	r.mu.Unlock()
	return best
}

// Run implements Runner.
func (r *Recorder) Run(_ context.Context, c Cmd) error {
	resp := r.record(c)
	if resp.Do != nil {
		if err := resp.Do(c); err != nil {
			return err
		}
	}
	return resp.Err
}

// Output implements Runner.
func (r *Recorder) Output(_ context.Context, c Cmd) ([]byte, error) {
	resp := r.record(c)
	if resp.Do != nil {
		if err := resp.Do(c); err != nil {
			return nil, err
		}
	}
	return resp.Output, resp.Err
}
