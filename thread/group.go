package thread

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// group collects non-daemon threads so the host can join all of them in
// one call at interpreter shutdown: if the interpreter shuts down with
// non-daemon threads still running, it waits for them rather than
// killing them outright. Built on errgroup the way the rest of the
// dependency pack uses it for fan-out/join lifecycles.
type group struct {
	mu sync.Mutex
	eg *errgroup.Group
}

var defaultGroup = &group{eg: &errgroup.Group{}}

func (g *group) add(t *Thread) {
	g.mu.Lock()
	eg := g.eg
	g.mu.Unlock()
	eg.Go(t.Join)
}

// JoinAll blocks until every non-daemon thread started since the last
// JoinAll call has finished, then resets the group for the next
// generation of threads.
func JoinAll() error {
	defaultGroup.mu.Lock()
	eg := defaultGroup.eg
	defaultGroup.eg = &errgroup.Group{}
	defaultGroup.mu.Unlock()
	return eg.Wait()
}
