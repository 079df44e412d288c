package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formdeck/internal/domain"
)

func TestMemoryEntryStore(t *testing.T) {
	s := NewMemoryEntryStore()
	assert.Equal(t, 0, s.Len())

	_, ok := s.Get(0)
	assert.False(t, ok)

	assert.Equal(t, 0, s.Add(domain.Entry{Name: "Ana"}))
	assert.Equal(t, 1, s.Add(domain.Entry{Name: "Bo"}))

	e, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Bo", e.Name)

	all := s.All()
	all[0].Name = "changed"
	first, _ := s.Get(0)
	assert.Equal(t, "Ana", first.Name, "All returns a copy")

	_, ok = s.Get(-1)
	assert.False(t, ok)
}

func TestMemoryEntryStoreConcurrentAdds(t *testing.T) {
	s := NewMemoryEntryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(domain.Entry{Name: "x"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
