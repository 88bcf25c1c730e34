// Package filesink provides a file-based traffic transcript sink.
package filesink

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/user/routemock/pkg/ports"
)

// Sink appends interception decisions to a JSONL transcript file, one
// event per line in the order they were resolved.
type Sink struct {
	path string
	fs   ports.FileSystem

	mu sync.Mutex
}

// New creates a new Sink writing to the given file path.
func New(path string, fs ports.FileSystem) *Sink {
	return &Sink{
		path: path,
		fs:   fs,
	}
}

// Enabled returns true as this sink records output.
func (s *Sink) Enabled() bool {
	return true
}

// Record appends one traffic event to the transcript.
func (s *Sink) Record(event ports.TrafficEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode traffic event: %w", err)
	}
	data = append(data, '\n')

	// Events arrive from concurrent request goroutines.
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.AppendFile(s.path, data)
}

// Ensure Sink implements ports.TrafficSink
var _ ports.TrafficSink = (*Sink)(nil)
