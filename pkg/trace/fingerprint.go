package trace

import "github.com/google/uuid"

// namespace scopes trace fingerprints so they cannot collide with other
// name-based UUIDs derived from the same bytes.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/marbles/trace"))

// Fingerprint returns a deterministic identifier for a raw trace payload.
// Identical payloads always map to the same UUID.
func Fingerprint(data []byte) uuid.UUID {
	return uuid.NewSHA1(namespace, data)
}
