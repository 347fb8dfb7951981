package trace

import (
	"strings"

	"github.com/matzehuels/marbles/pkg/errors"
)

// sourcePrefix marks a second tuple slot that names the originating publisher.
const sourcePrefix = "source("

// DecodeKey splits an encoded tuple key such as "[FluxMapFuseable,map]" into
// the stage name and operator class.
//
// The outer brackets are stripped and the remainder is split on the first
// comma. The class is always the first slot; the name is the second slot
// unless it starts with "source(", in which case the first slot is used.
func DecodeKey(key string) (name, class string, err error) {
	text := strings.TrimSpace(key)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")

	a, b, ok := strings.Cut(text, ",")
	if !ok {
		return "", "", errors.New(errors.ErrCodeMalformedTrace, "key %q is not a two-element tuple", key)
	}
	return pick(key, strings.TrimSpace(a), strings.TrimSpace(b))
}

// DecodeLegacyKey applies the historical key rule: drop the first character
// and the last two, remove the first space, split on every comma and take
// the first two slots.
func DecodeLegacyKey(key string) (name, class string, err error) {
	if len(key) < 3 {
		return "", "", errors.New(errors.ErrCodeMalformedTrace, "key %q is too short", key)
	}
	text := strings.Replace(key[1:len(key)-2], " ", "", 1)

	parts := strings.Split(text, ",")
	if len(parts) < 2 {
		return "", "", errors.New(errors.ErrCodeMalformedTrace, "key %q is not a two-element tuple", key)
	}
	return pick(key, parts[0], parts[1])
}

func pick(key, a, b string) (name, class string, err error) {
	name = b
	if strings.HasPrefix(b, sourcePrefix) {
		name = a
	}
	if name == "" {
		return "", "", errors.New(errors.ErrCodeMalformedTrace, "key %q has an empty stage name", key)
	}
	return name, a, nil
}
