// Package catalog provides the type-safe domain model shared between the
// intake pipeline and external extraction adapters. An adapter's job is to
// turn case media and hints into an IntakeBundle; everything downstream
// (comps, pricing, reporting) consumes these types read-only.
package catalog

// Category identifies which comparable-sales vertical an item belongs to.
// It doubles as the discriminator for the category-specific attribute union.
type Category string

const (
	CategoryVehicle     Category = "vehicle"
	CategoryTradingCard Category = "trading_card"
	CategoryBook        Category = "book"
	CategoryApparel     Category = "apparel"
	CategoryElectronics Category = "electronics"
	CategoryGeneric     Category = "generic"
)

// Categories returns all valid categories in declaration order.
func Categories() []Category {
	return []Category{
		CategoryVehicle,
		CategoryTradingCard,
		CategoryBook,
		CategoryApparel,
		CategoryElectronics,
		CategoryGeneric,
	}
}

// Valid reports whether the category is one of the closed set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Condition is the closed, ordered set of condition grades, from worst
// ("For Parts or Not Working") to best ("New").
type Condition string

const (
	ConditionForParts   Condition = "For Parts or Not Working"
	ConditionAcceptable Condition = "Acceptable"
	ConditionGood       Condition = "Good"
	ConditionVeryGood   Condition = "Very Good"
	ConditionExcellent  Condition = "Excellent"
	ConditionOpenBox    Condition = "Open Box"
	ConditionNewOther   Condition = "New (Other)"
	ConditionNew        Condition = "New"
)

// conditionRanks maps each grade to its position in the ordered set.
var conditionRanks = map[Condition]int{
	ConditionForParts:   0,
	ConditionAcceptable: 1,
	ConditionGood:       2,
	ConditionVeryGood:   3,
	ConditionExcellent:  4,
	ConditionOpenBox:    5,
	ConditionNewOther:   6,
	ConditionNew:        7,
}

// Rank returns the grade's position in the ordered set (0 = worst).
// Unknown grades rank below the worst known grade.
func (c Condition) Rank() int {
	if rank, ok := conditionRanks[c]; ok {
		return rank
	}
	return -1
}

// Valid reports whether the grade is one of the closed set.
func (c Condition) Valid() bool {
	_, ok := conditionRanks[c]
	return ok
}

// ListStrategy describes how a case's items should be listed.
type ListStrategy string

const (
	// ListStrategyIndividual lists every item on its own.
	ListStrategyIndividual ListStrategy = "individual"

	// ListStrategyLot lists the whole case as a single lot.
	ListStrategyLot ListStrategy = "lot"

	// ListStrategyMixed combines individual listings with sub-lots.
	ListStrategyMixed ListStrategy = "mixed"
)

// MediaSource identifies where a media reference points.
type MediaSource string

const (
	MediaSourceFile    MediaSource = "file"
	MediaSourceURL     MediaSource = "url"
	MediaSourceDataURL MediaSource = "data_url"
)

// Media is a single photo reference attached to an item.
type Media struct {
	Source  MediaSource `json:"source"`
	Path    string      `json:"path,omitempty"`
	URL     string      `json:"url,omitempty"`
	DataURL string      `json:"data_url,omitempty"`
	Alt     string      `json:"alt,omitempty"`
}

// Measurements holds physical dimensions used for shipping estimates.
type Measurements struct {
	LengthIn float64 `json:"length_in,omitempty"`
	WidthIn  float64 `json:"width_in,omitempty"`
	HeightIn float64 `json:"height_in,omitempty"`
	WeightOz float64 `json:"weight_oz,omitempty"`
}

// PricingDefaults carries listing-level price settings supplied by the
// extraction adapter, distinct from the computed strategy quotes.
type PricingDefaults struct {
	AskPriceUSD   float64 `json:"ask_price_usd,omitempty"`
	FloorPriceUSD float64 `json:"floor_price_usd,omitempty"`
	Auction       bool    `json:"auction"`
	AuctionDays   int     `json:"auction_days"`
	BestOffer     bool    `json:"best_offer"`
}

// ShippingDefaults carries listing-level shipping settings.
type ShippingDefaults struct {
	PolicyID     string `json:"policy_id,omitempty"`
	ServiceHint  string `json:"service_hint,omitempty"`
	HandlingDays int    `json:"handling_days"`
}

// Item is a single product discovered in a case. Exactly one of the
// category-specific attribute blocks (carried by the embedded Specifics
// union) may be populated, and it must match CategoryHint.
type Item struct {
	SKU          string   `json:"sku"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Model        string   `json:"model,omitempty"`
	CategoryHint Category `json:"category_hint"`

	ConditionGrade Condition `json:"condition_grade"`
	ConditionNotes string    `json:"condition_notes,omitempty"`

	Photos       []Media        `json:"photos,omitempty"`
	Measurements *Measurements  `json:"measurements,omitempty"`
	Attributes   map[string]any `json:"attributes,omitempty"`

	Specifics

	Pricing       *PricingDefaults    `json:"pricing,omitempty"`
	Shipping      *ShippingDefaults   `json:"shipping,omitempty"`
	ItemSpecifics map[string][]string `json:"item_specifics,omitempty"`

	IsLot       bool   `json:"is_lot,omitempty"`
	LotChildren []Item `json:"lot_children,omitempty"`
}

// LotMetadata describes the case-level listing plan.
type LotMetadata struct {
	LotID        string       `json:"lot_id"`
	ListStrategy ListStrategy `json:"list_strategy"`
	LocationZip  string       `json:"location_zip,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// IntakeBundle is the output of an extraction adapter for one case.
// The pipeline consumes it read-only, except for assigning SKUs to items
// that were extracted without one.
type IntakeBundle struct {
	CaseID      string      `json:"case_id"`
	LotMetadata LotMetadata `json:"lot_metadata"`
	Items       []Item      `json:"items"`
}
