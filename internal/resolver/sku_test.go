package resolver

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatedesk/intake/internal/report"
)

func reportsFor(skus ...string) []report.ItemReport {
	reports := make([]report.ItemReport, 0, len(skus))
	for _, sku := range skus {
		reports = append(reports, report.ItemReport{SKU: sku})
	}
	return reports
}

func TestResolveSKU(t *testing.T) {
	reports := reportsFor(
		"est-100-001-a1b2c3d4",
		"est-100-002-e5f6a7b8",
		"est-100-010-c9d0e1f2",
	)

	tests := []struct {
		name     string
		ref      string
		expected string
		wantErr  string
	}{
		{
			name:     "exact match",
			ref:      "est-100-002-e5f6a7b8",
			expected: "est-100-002-e5f6a7b8",
		},
		{
			name:     "unique prefix",
			ref:      "est-100-002",
			expected: "est-100-002-e5f6a7b8",
		},
		{
			name:    "ambiguous prefix",
			ref:     "est-100-0",
			wantErr: "ambiguous SKU prefix",
		},
		{
			name:    "no match",
			ref:     "est-200-001",
			wantErr: "no items found",
		},
		{
			name:    "prefix too short",
			ref:     "est",
			wantErr: "at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sku, err := ResolveSKU(reports, tt.ref)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sku)
		})
	}
}

func TestResolveSKUExactMatchBeatsLengthCheck(t *testing.T) {
	// A short ref that matches a SKU exactly resolves despite being under
	// the prefix-length floor.
	sku, err := ResolveSKU(reportsFor("abc", "abcdef-001"), "abc")

	require.NoError(t, err)
	assert.Equal(t, "abc", sku)
}

func TestErrorPredicates(t *testing.T) {
	_, notFound := ResolveSKU(reportsFor("est-100-001"), "est-999")
	assert.True(t, IsNotFoundError(notFound))
	assert.False(t, IsAmbiguousError(notFound))

	_, ambiguous := ResolveSKU(reportsFor("est-100-001", "est-100-002"), "est-100")
	assert.True(t, IsAmbiguousError(ambiguous))
	assert.False(t, IsNotFoundError(ambiguous))

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsAmbiguousError(nil))
}

func TestFormatAmbiguousError(t *testing.T) {
	var skus []string
	for i := 1; i <= 13; i++ {
		skus = append(skus, fmt.Sprintf("est-100-%03d", i))
	}

	_, err := ResolveSKU(reportsFor(skus...), "est-10")
	require.True(t, IsAmbiguousError(err))

	msg := FormatAmbiguousError(err.(*AmbiguousError))

	assert.Contains(t, msg, "matches 13 items")
	assert.Contains(t, msg, "est-100-001")
	assert.Contains(t, msg, "est-100-010")
	assert.NotContains(t, msg, "est-100-011")
	assert.Contains(t, msg, "...and 3 more")
	assert.Contains(t, msg, "Use a longer prefix")
	// 10 listed SKUs plus the prefix in the header line.
	assert.Equal(t, 11, strings.Count(msg, "est-10"))
}
