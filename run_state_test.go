package genetic_route

import (
	"math"
	"sync"
	test "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStateStartsEmpty(t *test.T) {
	state := NewRunState()
	assert.True(t, math.IsInf(state.BestLength(), 1))
	assert.Nil(t, state.BestPath())
}

func TestRunStateOfferOnlyLowers(t *test.T) {
	g := chainGraph()
	state := NewRunState()

	assert.True(t, state.Offer(makePath(t, g, 1, 4, 4, 4), 1))
	assert.False(t, state.Offer(makePath(t, g, 1, 4, 1, 1), 1), "a tie must not replace the best")
	assert.False(t, state.Offer(makePath(t, g, 1, 4, 2, 1), 2.1))
	assert.True(t, state.Offer(makePath(t, g, 1, 4, 2, 3), 0.3))

	assert.Equal(t, 0.3, state.BestLength())
	assert.Equal(t, []int{1, 2, 3, 4}, state.BestPath())
}

func TestRunStateKeepsSnapshot(t *test.T) {
	state := NewRunState()
	p := makePath(t, chainGraph(), 1, 4, 2, 3)
	require.True(t, state.Offer(p, p.Length()))

	p.Nodes[0] = 4
	assert.Equal(t, []int{1, 2, 3, 4}, state.BestPath())

	state.BestPath()[1] = 3
	assert.Equal(t, []int{1, 2, 3, 4}, state.BestPath())
}

func TestRunStateConcurrentOffers(t *test.T) {
	g := chainGraph()
	state := NewRunState()

	p := makePath(t, g, 1, 4, 2, 3)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(length float64) {
			defer wg.Done()
			state.Offer(p, length)
		}(float64(i))
	}
	wg.Wait()

	assert.Equal(t, 1.0, state.BestLength())
}
