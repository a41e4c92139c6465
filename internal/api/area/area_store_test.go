package area

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-city-radius/internal/types"
)

func TestStore(t *testing.T) {
	s := NewStore(time.Minute, time.Minute)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put(types.AreaTask{ID: "t1", Status: types.AreaTaskPending})
	got, ok := s.Get("t1")
	require.True(t, ok)
	assert.Equal(t, types.AreaTaskPending, got.Status)

	s.Put(types.AreaTask{ID: "t1", Status: types.AreaTaskDone, Cities: []types.City{{GUID: "a"}}})
	got, ok = s.Get("t1")
	require.True(t, ok)
	assert.Equal(t, types.AreaTaskDone, got.Status)
	assert.Len(t, got.Cities, 1)
	assert.Equal(t, 1, s.count())
}

func TestStoreExpires(t *testing.T) {
	s := NewStore(20*time.Millisecond, time.Hour)
	s.Put(types.AreaTask{ID: "t1"})

	assert.Eventually(t, func() bool {
		_, ok := s.Get("t1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
