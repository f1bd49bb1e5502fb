package catalog

import "fmt"

// Specifics is the tagged union of category-specific attribute blocks.
// At most one variant pointer is populated, and the populated variant must
// match the item's category hint; Validate enforces both. Use the
// SpecificsFor* constructors to build a well-formed value.
type Specifics struct {
	Vehicle     *VehicleSpecifics     `json:"vehicle,omitempty"`
	Card        *TradingCardSpecifics `json:"card,omitempty"`
	Book        *BookSpecifics        `json:"book,omitempty"`
	Apparel     *ApparelSpecifics     `json:"apparel,omitempty"`
	Electronics *ElectronicsSpecifics `json:"electronics,omitempty"`
	Generic     *GenericSpecifics     `json:"generic,omitempty"`
}

// VehicleSpecifics holds attributes for the vehicle category.
type VehicleSpecifics struct {
	VIN           string `json:"vin,omitempty"`
	Year          int    `json:"year,omitempty"`
	Make          string `json:"make,omitempty"`
	Model         string `json:"model,omitempty"`
	Trim          string `json:"trim,omitempty"`
	BodyType      string `json:"body_type,omitempty"`
	Mileage       int    `json:"mileage,omitempty"`
	Transmission  string `json:"transmission,omitempty"`
	Drivetrain    string `json:"drivetrain,omitempty"`
	FuelType      string `json:"fuel_type,omitempty"`
	ExteriorColor string `json:"exterior_color,omitempty"`
	InteriorColor string `json:"interior_color,omitempty"`
	TitleStatus   string `json:"title_status,omitempty"`
}

// TradingCardSpecifics holds attributes for the trading_card category.
type TradingCardSpecifics struct {
	Sport             string `json:"sport,omitempty"`
	Year              int    `json:"year,omitempty"`
	SetName           string `json:"set_name,omitempty"`
	Player            string `json:"player,omitempty"`
	CardNumber        string `json:"card_number,omitempty"`
	ParallelOrVariant string `json:"parallel_or_variant,omitempty"`
	Grade             string `json:"grade,omitempty"`
	Grader            string `json:"grader,omitempty"`
	Rookie            bool   `json:"rookie,omitempty"`
	Autograph         bool   `json:"autograph,omitempty"`
	Memorabilia       bool   `json:"memorabilia,omitempty"`
}

// BookSpecifics holds attributes for the book category.
type BookSpecifics struct {
	Author      string `json:"author,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Year        int    `json:"year,omitempty"`
	Edition     string `json:"edition,omitempty"`
	ISBN10      string `json:"isbn_10,omitempty"`
	ISBN13      string `json:"isbn_13,omitempty"`
	Format      string `json:"format,omitempty"`
	Language    string `json:"language,omitempty"`
	Series      string `json:"series,omitempty"`
	CodeOrMPN   string `json:"code_or_mpn,omitempty"`
}

// ApparelSpecifics holds attributes for the apparel category.
type ApparelSpecifics struct {
	Brand    string `json:"brand,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Size     string `json:"size,omitempty"`
	SizeType string `json:"size_type,omitempty"`
	Color    string `json:"color,omitempty"`
	Material string `json:"material,omitempty"`
	Style    string `json:"style,omitempty"`
}

// ElectronicsSpecifics holds attributes for the electronics category.
type ElectronicsSpecifics struct {
	Brand           string `json:"brand,omitempty"`
	Model           string `json:"model,omitempty"`
	MPN             string `json:"mpn,omitempty"`
	StorageCapacity string `json:"storage_capacity,omitempty"`
	Color           string `json:"color,omitempty"`
}

// GenericSpecifics holds free-form aspects for items outside the
// structured categories.
type GenericSpecifics struct {
	Aspects map[string]any `json:"aspects,omitempty"`
}

// SpecificsForVehicle builds a union populated with the vehicle variant.
func SpecificsForVehicle(v VehicleSpecifics) Specifics {
	return Specifics{Vehicle: &v}
}

// SpecificsForCard builds a union populated with the trading_card variant.
func SpecificsForCard(c TradingCardSpecifics) Specifics {
	return Specifics{Card: &c}
}

// SpecificsForBook builds a union populated with the book variant.
func SpecificsForBook(b BookSpecifics) Specifics {
	return Specifics{Book: &b}
}

// SpecificsForApparel builds a union populated with the apparel variant.
func SpecificsForApparel(a ApparelSpecifics) Specifics {
	return Specifics{Apparel: &a}
}

// SpecificsForElectronics builds a union populated with the electronics variant.
func SpecificsForElectronics(e ElectronicsSpecifics) Specifics {
	return Specifics{Electronics: &e}
}

// SpecificsForGeneric builds a union populated with the generic variant.
func SpecificsForGeneric(g GenericSpecifics) Specifics {
	return Specifics{Generic: &g}
}

// Category returns the category of the populated variant. ok is false when
// no variant is populated.
func (s Specifics) Category() (Category, bool) {
	switch {
	case s.Vehicle != nil:
		return CategoryVehicle, true
	case s.Card != nil:
		return CategoryTradingCard, true
	case s.Book != nil:
		return CategoryBook, true
	case s.Apparel != nil:
		return CategoryApparel, true
	case s.Electronics != nil:
		return CategoryElectronics, true
	case s.Generic != nil:
		return CategoryGeneric, true
	default:
		return "", false
	}
}

// populated counts how many variants are set.
func (s Specifics) populated() int {
	count := 0
	for _, set := range []bool{
		s.Vehicle != nil,
		s.Card != nil,
		s.Book != nil,
		s.Apparel != nil,
		s.Electronics != nil,
		s.Generic != nil,
	} {
		if set {
			count++
		}
	}
	return count
}

// Validate enforces the union invariant: at most one variant populated,
// and the populated variant matching the item's category hint.
func (s Specifics) Validate(hint Category) error {
	if n := s.populated(); n > 1 {
		return fmt.Errorf("%d category-specific blocks populated, at most one allowed", n)
	}

	category, ok := s.Category()
	if !ok {
		return nil
	}
	if category != hint {
		return fmt.Errorf("category-specific block %q does not match category_hint %q", category, hint)
	}
	return nil
}
