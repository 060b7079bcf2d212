package api

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// RequestEvent captures one executed gateway call for the local request
// log.
type RequestEvent struct {
	Method       string
	Path         string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// Recorder persists request events. Implemented by the sqlite store.
type Recorder interface {
	RecordRequest(ev RequestEvent) error
}

// observe performs the transport round trip and, when a recorder is
// configured, logs the outcome. Recording failures warn on stderr and
// never fail the request.
func (c *Client) observe(req *http.Request, cl call) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	latencyMs := time.Since(start).Milliseconds()

	if c.recorder != nil {
		ev := RequestEvent{
			Method:    cl.method,
			Path:      cl.path,
			LatencyMs: latencyMs,
		}
		if err != nil {
			ev.ErrorMessage = err.Error()
		} else {
			ev.Status = resp.StatusCode
			ev.Success = resp.StatusCode >= 200 && resp.StatusCode <= 299
		}
		if logErr := c.recorder.RecordRequest(ev); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record request event: %v\n", logErr)
		}
	}

	if err != nil {
		return nil, &ErrTransport{Err: err}
	}
	return resp, nil
}
