package domain

import (
	"fmt"
	"strings"
)

const locatorScheme = "s3://"

// Locator identifies a staged payload object in blob storage.
type Locator struct {
	Bucket string
	Key    string
}

// ParseLocator parses an s3://bucket/key reference. Anything else is
// ErrInvalidLocator; a job carrying one is terminally failed.
func ParseLocator(s string) (Locator, error) {
	if !strings.HasPrefix(s, locatorScheme) {
		return Locator{}, fmt.Errorf("%w: %q", ErrInvalidLocator, s)
	}

	rest := strings.TrimPrefix(s, locatorScheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return Locator{}, fmt.Errorf("%w: %q", ErrInvalidLocator, s)
	}

	return Locator{Bucket: bucket, Key: key}, nil
}

func (l Locator) String() string {
	return locatorScheme + l.Bucket + "/" + l.Key
}
