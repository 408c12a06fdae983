// Package sse writes server-sent events onto a streaming response body
package sse

import (
	"bufio"
	"encoding/json"
	"fmt"
)

// Event is one server-sent event. Empty fields are not written.
type Event struct {
	Event string
	ID    string
	Retry int
	// Data is written as is when it is a string or []byte, JSON otherwise
	Data interface{}
}

func encode(data interface{}) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("sse: encode data: %w", err)
	}
	return string(raw), nil
}

// Send writes ev and flushes so the client sees it immediately
func Send(w *bufio.Writer, ev Event) error {
	data, err := encode(ev.Data)
	if err != nil {
		return err
	}

	if ev.ID != "" {
		fmt.Fprintf(w, "id: %s\n", ev.ID)
	}
	if ev.Retry > 0 {
		fmt.Fprintf(w, "retry: %d\n", ev.Retry)
	}
	if ev.Event != "" {
		fmt.Fprintf(w, "event: %s\n", ev.Event)
	}
	fmt.Fprintf(w, "data: %s\n\n", data)

	// bufio keeps the first write error; Flush reports it
	return w.Flush()
}

// SendStarted opens a stream with its initial state
func SendStarted(w *bufio.Writer, state interface{}) error {
	return Send(w, Event{Event: "started", Data: state})
}

// SendKeepAlive writes a comment line so idle proxies keep the connection
func SendKeepAlive(w *bufio.Writer) error {
	if _, err := w.WriteString(": ping\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
