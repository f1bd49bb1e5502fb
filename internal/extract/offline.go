package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/estatedesk/intake/pkg/catalog"
)

// categoryHintKeys maps hint-file block keys to their category, in the
// order they are probed when building an item from hints.
var categoryHintKeys = []struct {
	key      string
	category catalog.Category
}{
	{"book", catalog.CategoryBook},
	{"electronics", catalog.CategoryElectronics},
	{"vehicle", catalog.CategoryVehicle},
	{"card", catalog.CategoryTradingCard},
	{"apparel", catalog.CategoryApparel},
}

// OfflineExtractor builds a deterministic bundle without any external calls.
// When the hints describe a single item it builds that item, category block
// included; otherwise it produces one generic placeholder item carrying all
// of the case's photos.
type OfflineExtractor struct{}

// NewOffline returns the deterministic offline extractor.
func NewOffline() *OfflineExtractor {
	return &OfflineExtractor{}
}

// Extract never returns an error: bad hint values degrade to defaults.
func (e *OfflineExtractor) Extract(_ context.Context, caseID string, mediaPaths []string, hints map[string]any) (catalog.IntakeBundle, error) {
	photos := make([]catalog.Media, 0, len(mediaPaths))
	for i, path := range mediaPaths {
		photos = append(photos, catalog.Media{
			Source: catalog.MediaSourceFile,
			Path:   path,
			Alt:    fmt.Sprintf("Image %d", i+1),
		})
	}

	var item catalog.Item
	if isSingleItemHint(hints) {
		item = itemFromHints(caseID, hints, photos)
	} else {
		item = catalog.Item{
			SKU:            caseID + "-001",
			Title:          hintString(hints, "title", "Unlabeled Item"),
			CategoryHint:   catalog.CategoryGeneric,
			ConditionGrade: catalog.ConditionGood,
			Photos:         photos,
			Pricing:        defaultPricing(),
			Shipping:       defaultShipping(),
		}
	}

	return catalog.IntakeBundle{
		CaseID: caseID,
		LotMetadata: catalog.LotMetadata{
			LotID:        caseID,
			ListStrategy: catalog.ListStrategyIndividual,
			Notes:        "Generated offline",
		},
		Items: []catalog.Item{item},
	}, nil
}

// isSingleItemHint reports whether the hints describe one concrete item
// rather than loose case-level notes.
func isSingleItemHint(hints map[string]any) bool {
	if len(hints) == 0 {
		return false
	}
	for _, key := range []string{"title", "brand", "model"} {
		if _, ok := hints[key]; ok {
			return true
		}
	}
	for _, block := range categoryHintKeys {
		if _, ok := hints[block.key]; ok {
			return true
		}
	}
	return false
}

// itemFromHints builds the single item a hint file describes. Unknown or
// invalid hint values fall back to safe defaults instead of failing.
func itemFromHints(caseID string, hints map[string]any, photos []catalog.Media) catalog.Item {
	item := catalog.Item{
		SKU:            caseID + "-001",
		Title:          hintString(hints, "title", "Item from Hints"),
		Brand:          hintString(hints, "brand", ""),
		Model:          hintString(hints, "model", ""),
		CategoryHint:   catalog.CategoryGeneric,
		ConditionGrade: catalog.ConditionGood,
		Photos:         photos,
		Pricing:        defaultPricing(),
		Shipping:       defaultShipping(),
	}

	if hinted := catalog.Category(hintString(hints, "category_hint", "")); hinted.Valid() {
		item.CategoryHint = hinted
	}
	if graded := catalog.Condition(hintString(hints, "condition_grade", "")); graded.Valid() {
		item.ConditionGrade = graded
	}

	for _, block := range categoryHintKeys {
		raw, ok := hints[block.key]
		if !ok {
			continue
		}
		specifics, err := decodeSpecifics(block.category, raw)
		if err != nil {
			continue
		}
		// A hinted category block overrides a contradictory category_hint
		// so the union invariant holds.
		item.CategoryHint = block.category
		item.Specifics = specifics
		break
	}

	return item
}

// decodeSpecifics maps a raw hint block into the matching specifics
// variant via a JSON round trip.
func decodeSpecifics(category catalog.Category, raw any) (catalog.Specifics, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return catalog.Specifics{}, err
	}

	switch category {
	case catalog.CategoryBook:
		var b catalog.BookSpecifics
		if err := json.Unmarshal(data, &b); err != nil {
			return catalog.Specifics{}, err
		}
		return catalog.SpecificsForBook(b), nil
	case catalog.CategoryElectronics:
		var e catalog.ElectronicsSpecifics
		if err := json.Unmarshal(data, &e); err != nil {
			return catalog.Specifics{}, err
		}
		return catalog.SpecificsForElectronics(e), nil
	case catalog.CategoryVehicle:
		var v catalog.VehicleSpecifics
		if err := json.Unmarshal(data, &v); err != nil {
			return catalog.Specifics{}, err
		}
		return catalog.SpecificsForVehicle(v), nil
	case catalog.CategoryTradingCard:
		var c catalog.TradingCardSpecifics
		if err := json.Unmarshal(data, &c); err != nil {
			return catalog.Specifics{}, err
		}
		return catalog.SpecificsForCard(c), nil
	case catalog.CategoryApparel:
		var a catalog.ApparelSpecifics
		if err := json.Unmarshal(data, &a); err != nil {
			return catalog.Specifics{}, err
		}
		return catalog.SpecificsForApparel(a), nil
	default:
		return catalog.Specifics{}, fmt.Errorf("no specifics block for category %s", category)
	}
}

func hintString(hints map[string]any, key, fallback string) string {
	if v, ok := hints[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func defaultPricing() *catalog.PricingDefaults {
	return &catalog.PricingDefaults{AuctionDays: 7, BestOffer: true}
}

func defaultShipping() *catalog.ShippingDefaults {
	return &catalog.ShippingDefaults{HandlingDays: 1}
}
