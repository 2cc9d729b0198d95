package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys are namespaced by the caller so two entity kinds never share an ID.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// FamilyUUID is the ID of the family owned by ownerUID. Every owner has at
// most one family, so InitFamily can be replayed safely.
func FamilyUUID(ownerUID string) uuid.UUID {
	owner := strings.TrimSpace(ownerUID)
	if owner == "" {
		return uuid.Nil
	}
	return UUID("go-famhome:family:" + owner)
}
