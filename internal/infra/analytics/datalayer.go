package analytics

import (
	"context"
	"sync"

	"github.com/calemorrison/funnel-api/internal/infra/queue"
)

// DataLayer is the in-process tag sink: the server-side analog of the
// page's dataLayer array. One instance lives for the process lifetime;
// it also serves as the fake sink in tests and as the fallback when no
// broker is configured.
type DataLayer struct {
	mu   sync.Mutex
	tags []queue.TagPayload
}

func NewDataLayer() *DataLayer {
	return &DataLayer{}
}

func (d *DataLayer) Push(_ context.Context, tag queue.TagPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tags = append(d.tags, tag)
	return nil
}

// Tags returns a snapshot of everything pushed so far, in push order.
func (d *DataLayer) Tags() []queue.TagPayload {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]queue.TagPayload, len(d.tags))
	copy(out, d.tags)
	return out
}

func (d *DataLayer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tags)
}
