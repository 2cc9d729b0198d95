package families

import (
	"context"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FamilyRepository exposes persistence operations for families.
type FamilyRepository interface {
	Create(ctx context.Context, family *Family) (*Family, error)
	Update(ctx context.Context, family *Family) (*Family, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Family, error)
	GetByOwner(ctx context.Context, ownerUID string) (*Family, error)
	List(ctx context.Context) ([]*Family, error)
}

// NotFoundError is returned when a family cannot be located. It matches
// ErrFamilyNotFound with errors.Is.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return "family not found"
	}
	return fmt.Sprintf("family %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrFamilyNotFound
}

// NewFamilyRepository creates the go-repository-bun repository for families,
// identified by owner UID.
func NewFamilyRepository(db *bun.DB) repository.Repository[*Family] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Family]{
		NewRecord:          func() *Family { return &Family{} },
		GetID:              func(f *Family) uuid.UUID { return f.ID },
		SetID:              func(f *Family, id uuid.UUID) { f.ID = id },
		GetIdentifier:      func() string { return "owner_uid" },
		GetIdentifierValue: func(f *Family) string { return f.OwnerUID },
	})
}
