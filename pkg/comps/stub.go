package comps

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/estatedesk/intake/pkg/catalog"
)

// StubProvider generates plausible comp stats as a pure function of the
// item's SKU and title. The same item always yields the same stats, which
// is what makes the pipeline's re-run determinism testable without a live
// market API.
type StubProvider struct{}

// NewStub returns a deterministic offline comps provider.
func NewStub() *StubProvider {
	return &StubProvider{}
}

// Stats derives statistics from a PRNG seeded with md5(sku|title).
// The generated values always satisfy Stats.Validate: p10 and p90 are fixed
// fractions of the median, and sell-through is a ratio of the two counts.
func (p *StubProvider) Stats(_ context.Context, item catalog.Item, _ int) (Stats, error) {
	sum := md5.Sum([]byte(item.SKU + "|" + item.Title))
	seed := int64(binary.BigEndian.Uint32(sum[:4]))
	rng := rand.New(rand.NewSource(seed))

	median := round2(30.0 + rng.Float64()*90.0)
	p10 := round2(0.7 * median)
	p90 := round2(1.3 * median)
	avgDOM := float64(7 + rng.Intn(29))
	sold := 10 + rng.Intn(51)
	active := 5 + rng.Intn(36)
	sellThrough := math.Round(float64(sold)/float64(sold+active)*1000) / 1000

	return Stats{
		SoldCount:      sold,
		ActiveCount:    active,
		SellThroughPct: sellThrough,
		MedianSold:     median,
		P10Sold:        p10,
		P90Sold:        p90,
		AvgDOMDays:     avgDOM,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
