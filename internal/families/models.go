package families

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Family is one household and its editable home page.
type Family struct {
	bun.BaseModel `bun:"table:families,alias:f"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	OwnerUID     string    `bun:"owner_uid,notnull,unique" json:"owner_uid"`
	Name         string    `bun:"name,notnull" json:"name"`
	Slug         string    `bun:"slug,notnull" json:"slug"`
	HeaderTitle  string    `bun:"header_title,notnull" json:"header_title"`
	BodyTitle    string    `bun:"body_title,notnull" json:"body_title"`
	BodyMarkdown string    `bun:"body_markdown,notnull" json:"body_markdown"`
	Footer       string    `bun:"footer" json:"footer,omitempty"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func cloneFamily(f *Family) *Family {
	if f == nil {
		return nil
	}
	cloned := *f
	return &cloned
}
