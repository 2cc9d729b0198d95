package families

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryFamilyRepository provides an in-memory implementation of FamilyRepository.
type MemoryFamilyRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Family
	byOwner map[string]uuid.UUID
}

// NewMemoryFamilyRepository constructs an empty memory-backed repository.
func NewMemoryFamilyRepository() *MemoryFamilyRepository {
	return &MemoryFamilyRepository{
		byID:    make(map[uuid.UUID]*Family),
		byOwner: make(map[string]uuid.UUID),
	}
}

func (r *MemoryFamilyRepository) Create(_ context.Context, family *Family) (*Family, error) {
	if family == nil {
		return nil, nil
	}
	cloned := cloneFamily(family)

	r.mu.Lock()
	defer r.mu.Unlock()

	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	r.byID[cloned.ID] = cloned
	r.byOwner[cloned.OwnerUID] = cloned.ID

	return cloneFamily(cloned), nil
}

func (r *MemoryFamilyRepository) Update(_ context.Context, family *Family) (*Family, error) {
	if family == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[family.ID]; !ok {
		return nil, &NotFoundError{Key: family.ID.String()}
	}

	cloned := cloneFamily(family)
	r.byID[cloned.ID] = cloned
	r.byOwner[cloned.OwnerUID] = cloned.ID

	return cloneFamily(cloned), nil
}

func (r *MemoryFamilyRepository) GetByID(_ context.Context, id uuid.UUID) (*Family, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneFamily(record), nil
}

func (r *MemoryFamilyRepository) GetByOwner(_ context.Context, ownerUID string) (*Family, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOwner[ownerUID]
	if !ok {
		return nil, &NotFoundError{Key: ownerUID}
	}
	return cloneFamily(r.byID[id]), nil
}

func (r *MemoryFamilyRepository) List(_ context.Context) ([]*Family, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Family, 0, len(r.byID))
	for _, family := range r.byID {
		out = append(out, cloneFamily(family))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].OwnerUID < out[j].OwnerUID
	})
	return out, nil
}
