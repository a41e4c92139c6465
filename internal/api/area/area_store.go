package area

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-city-radius/internal/types"
)

// Store keeps area tasks by id until they expire. Every write restarts the
// expiration of that task.
type Store struct {
	cache *cache.Cache
}

func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{cache: cache.New(ttl, cleanupInterval)}
}

func (s *Store) Put(task types.AreaTask) {
	s.cache.Set(task.ID, task, cache.DefaultExpiration)
}

func (s *Store) Get(id string) (types.AreaTask, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return types.AreaTask{}, false
	}
	return v.(types.AreaTask), true
}

// count includes expired tasks not yet purged.
func (s *Store) count() int {
	return s.cache.ItemCount()
}
