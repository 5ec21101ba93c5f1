// Package progrock provides the Progrock implementation of the tracing adapter.
package progrock

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/temper/internal/core/ports"
)

var (
	_ ports.Tracer = (*Recorder)(nil)
	_ ports.Span   = (*Vertex)(nil)
)

// Recorder implements ports.Tracer by recording one progrock vertex per span.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	tape := progrock.NewTape()
	return NewRecorder(tape)
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	rec := progrock.NewRecorder(w)
	return &Recorder{
		w:   w,
		rec: rec,
	}
}

// Start records a new vertex. Repeated stage names get distinct vertices.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	d := digest.FromString(fmt.Sprintf("%s#%d", name, r.seq.Add(1)))
	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v}
}

// Shutdown closes the writer when it supports closing.
func (r *Recorder) Shutdown(_ context.Context) error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
