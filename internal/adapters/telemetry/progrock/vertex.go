package progrock

import (
	"fmt"
	"sync"

	"github.com/vito/progrock"
)

// Vertex implements ports.Span wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder

	mu  sync.Mutex
	err error
}

// Write records output on the vertex stdout stream.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// SetAttribute writes the attribute as a line on the vertex stdout stream.
func (v *Vertex) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "%s=%v\n", key, value)
}

// RecordError remembers err; it completes the vertex on End.
func (v *Vertex) RecordError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
	_, _ = fmt.Fprintln(v.vertex.Stderr(), err.Error())
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// End marks the vertex as finished, failed when an error was recorded.
func (v *Vertex) End() {
	v.mu.Lock()
	err := v.err
	v.mu.Unlock()
	v.vertex.Done(err)
}
