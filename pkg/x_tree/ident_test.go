package x_tree_test

import (
	"sync"
	"testing"

	"github.com/rskv-p/hier/pkg/x_tree"
	"github.com/stretchr/testify/assert"
)

func TestIDGen_Unique(t *testing.T) {
	gen := x_tree.NewIDGen()
	seen := make(map[x_tree.ID]bool)
	for i := 0; i < 200; i++ {
		var n x_tree.Node
		if i%3 == 0 {
			n = gen.NewLeaf()
		} else {
			n = gen.NewComposite()
		}
		assert.False(t, seen[n.ID()], "duplicate id %d", n.ID())
		seen[n.ID()] = true
	}
	assert.Equal(t, x_tree.ID(200), gen.Peek())
}

func TestIDGen_NeverReused(t *testing.T) {
	gen := x_tree.NewIDGen()
	c := gen.NewComposite()
	l := gen.NewLeaf()
	_, _ = c.Add(l)
	c.Release()

	next := gen.NewLeaf()
	assert.Equal(t, x_tree.ID(2), next.ID())
}

func TestIDGen_Concurrent(t *testing.T) {
	gen := x_tree.NewIDGen()
	const workers, per = 8, 100

	var mu sync.Mutex
	seen := make(map[x_tree.ID]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				id := gen.NewLeaf().ID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*per)
}

func TestKind_Fixed(t *testing.T) {
	gen := x_tree.NewIDGen()
	c := gen.NewComposite()
	l := gen.NewLeaf()

	_, _ = c.Add(l)
	_, _ = c.OperationAll()
	_, _ = c.Remove(l)
	_, _ = l.Add(c)

	assert.Equal(t, x_tree.KindComposite, c.Kind())
	assert.Equal(t, x_tree.KindLeaf, l.Kind())
	assert.Equal(t, "composite", c.Kind().String())
	assert.Equal(t, "leaf", l.Kind().String())
}
