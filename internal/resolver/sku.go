// Package resolver resolves user-supplied SKU prefixes against a case's
// item reports.
package resolver

import (
	"fmt"
	"strings"

	"github.com/estatedesk/intake/internal/report"
)

// MinSKUPrefixLength is the minimum accepted prefix length. Assigned SKUs
// start with the case id, so very short prefixes would match everything.
const MinSKUPrefixLength = 6

// ResolveSKU resolves ref to a full SKU among the given reports. An exact
// match always wins; otherwise ref is treated as a prefix and must match
// exactly one SKU.
func ResolveSKU(reports []report.ItemReport, ref string) (string, error) {
	for _, r := range reports {
		if r.SKU == ref {
			return r.SKU, nil
		}
	}

	if len(ref) < MinSKUPrefixLength {
		return "", fmt.Errorf("SKU prefix must be at least %d characters (got %d)", MinSKUPrefixLength, len(ref))
	}

	var matches []string
	for _, r := range reports {
		if strings.HasPrefix(r.SKU, ref) {
			matches = append(matches, r.SKU)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Ref: ref}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Ref: ref, Matches: matches}
	}
}

// NotFoundError indicates no SKU matched the reference.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no items found matching '%s'", e.Ref)
}

// AmbiguousError indicates multiple SKUs matched the prefix.
type AmbiguousError struct {
	Ref     string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous SKU prefix '%s' matches %d items", e.Ref, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly message listing the
// matching SKUs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	msg := fmt.Sprintf("Error: ambiguous SKU prefix '%s' matches %d items:\n", err.Ref, len(err.Matches))

	displayCount := len(err.Matches)
	if displayCount > 10 {
		displayCount = 10
	}
	for i := 0; i < displayCount; i++ {
		msg += fmt.Sprintf("  %s\n", err.Matches[i])
	}
	if len(err.Matches) > 10 {
		msg += fmt.Sprintf("  ...and %d more\n", len(err.Matches)-10)
	}

	msg += "\nUse a longer prefix to uniquely identify the item."
	return msg
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
