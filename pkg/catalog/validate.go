package catalog

import "fmt"

// Validate performs structural validation on an item: closed-set fields,
// the specifics union invariant, and the lot tree rules (children may not
// themselves be lots, and a child may not reuse its parent's SKU).
func (i *Item) Validate() error {
	if i.Title == "" {
		return fmt.Errorf("item %q: title is required", i.SKU)
	}
	if !i.CategoryHint.Valid() {
		return fmt.Errorf("item %q: invalid category_hint: %s", i.SKU, i.CategoryHint)
	}
	if !i.ConditionGrade.Valid() {
		return fmt.Errorf("item %q: invalid condition_grade: %s", i.SKU, i.ConditionGrade)
	}
	if err := i.Specifics.Validate(i.CategoryHint); err != nil {
		return fmt.Errorf("item %q: %w", i.SKU, err)
	}

	if len(i.LotChildren) > 0 && !i.IsLot {
		return fmt.Errorf("item %q: has lot children but is_lot is false", i.SKU)
	}
	for idx := range i.LotChildren {
		child := &i.LotChildren[idx]
		if child.SKU != "" && child.SKU == i.SKU {
			return fmt.Errorf("item %q: lot child references its parent's SKU", i.SKU)
		}
		// Lots nest at most one level deep.
		if child.IsLot || len(child.LotChildren) > 0 {
			return fmt.Errorf("item %q: lot child %q is itself a lot; nested lots are not supported", i.SKU, child.SKU)
		}
		if err := child.Validate(); err != nil {
			return fmt.Errorf("item %q: lot child %d: %w", i.SKU, idx, err)
		}
	}
	return nil
}

// Validate checks every item in the bundle and enforces SKU uniqueness
// across the case, lot children included. Items with an unassigned (empty)
// SKU are permitted; the pipeline assigns deterministic SKUs before any
// output is written.
func (b *IntakeBundle) Validate() error {
	if b.CaseID == "" {
		return fmt.Errorf("bundle: case_id is required")
	}

	seen := make(map[string]bool)
	claim := func(sku string) error {
		if sku == "" {
			return nil
		}
		if seen[sku] {
			return fmt.Errorf("bundle %q: duplicate SKU %q", b.CaseID, sku)
		}
		seen[sku] = true
		return nil
	}

	for idx := range b.Items {
		item := &b.Items[idx]
		if err := item.Validate(); err != nil {
			return fmt.Errorf("bundle %q: item %d: %w", b.CaseID, idx, err)
		}
		if err := claim(item.SKU); err != nil {
			return err
		}
		for cidx := range item.LotChildren {
			if err := claim(item.LotChildren[cidx].SKU); err != nil {
				return err
			}
		}
	}
	return nil
}
