// Package identity derives stable identifiers for served documents.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const documentKeyPrefix = "mdserve:document:"

// DocumentUUID identifies a document by its resolved path using go-hashid,
// so a file keeps the same id across requests and restarts. Paths are hashed
// as given: "A.md" and "a.md" are different documents.
func DocumentUUID(resolved string) uuid.UUID {
	if strings.TrimSpace(resolved) == "" {
		return uuid.Nil
	}
	key := documentKeyPrefix + resolved
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || id == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key))
	}
	return id
}
