package models

import (
	"strings"

	"github.com/gosimple/slug"
)

// ensureSlug fills *dst from the given parts when it is still empty.
// An existing slug is never recomputed.
func ensureSlug(dst *string, parts ...string) error {
	if *dst != "" {
		return nil
	}
	s := slug.Make(strings.Join(parts, "-"))
	if s == "" {
		return ErrEmptySlug
	}
	*dst = s
	return nil
}
