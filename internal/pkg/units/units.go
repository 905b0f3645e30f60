// Package units converts between common kitchen measurement units. Each unit
// carries a factor to its category's base unit (gram, milliliter, count,
// millimeter); conversion only works within a category.
package units

import (
	"fmt"
	"strings"
)

type Category string

const (
	Weight Category = "weight"
	Volume Category = "volume"
	Count  Category = "count"
	Length Category = "length"
)

type Unit struct {
	Name         string
	Abbreviation string
	Category     Category
	// ToBase is the multiplier into the category's base unit.
	ToBase float64
}

var catalog = map[string]Unit{
	"gram":     {Name: "Gram", Abbreviation: "g", Category: Weight, ToBase: 1},
	"kilogram": {Name: "Kilogram", Abbreviation: "kg", Category: Weight, ToBase: 1000},
	"ounce":    {Name: "Ounce", Abbreviation: "oz", Category: Weight, ToBase: 28.35},
	"pound":    {Name: "Pound", Abbreviation: "lb", Category: Weight, ToBase: 453.59},

	"milliliter":  {Name: "Milliliter", Abbreviation: "ml", Category: Volume, ToBase: 1},
	"liter":       {Name: "Liter", Abbreviation: "l", Category: Volume, ToBase: 1000},
	"teaspoon":    {Name: "Teaspoon", Abbreviation: "tsp", Category: Volume, ToBase: 4.93},
	"tablespoon":  {Name: "Tablespoon", Abbreviation: "tbsp", Category: Volume, ToBase: 14.79},
	"fluid_ounce": {Name: "Fluid Ounce", Abbreviation: "fl oz", Category: Volume, ToBase: 29.57},
	"cup":         {Name: "Cup", Abbreviation: "cup", Category: Volume, ToBase: 236.59},
	"pint":        {Name: "Pint", Abbreviation: "pt", Category: Volume, ToBase: 473.18},
	"quart":       {Name: "Quart", Abbreviation: "qt", Category: Volume, ToBase: 946.35},
	"gallon":      {Name: "Gallon", Abbreviation: "gal", Category: Volume, ToBase: 3785.41},

	"count": {Name: "Count", Abbreviation: "ct", Category: Count, ToBase: 1},
	"dozen": {Name: "Dozen", Abbreviation: "doz", Category: Count, ToBase: 12},

	"millimeter": {Name: "Millimeter", Abbreviation: "mm", Category: Length, ToBase: 1},
	"centimeter": {Name: "Centimeter", Abbreviation: "cm", Category: Length, ToBase: 10},
	"inch":       {Name: "Inch", Abbreviation: "in", Category: Length, ToBase: 25.4},
}

// Lookup resolves a unit by its catalog key or its abbreviation, case
// insensitively.
func Lookup(key string) (Unit, bool) {
	if u, ok := catalog[key]; ok {
		return u, true
	}
	for _, u := range catalog {
		if strings.EqualFold(u.Abbreviation, key) {
			return u, true
		}
	}
	return Unit{}, false
}

// Convert translates value from one unit to another within the same category.
func Convert(value float64, from, to string) (float64, error) {
	fromUnit, ok := Lookup(from)
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", from)
	}
	toUnit, ok := Lookup(to)
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", to)
	}
	if fromUnit.Category != toUnit.Category {
		return 0, fmt.Errorf("cannot convert %s (%s) to %s (%s)",
			from, fromUnit.Category, to, toUnit.Category)
	}
	return value * fromUnit.ToBase / toUnit.ToBase, nil
}

// Format renders a value with the unit's abbreviation. Unknown units pass
// through unchanged.
func Format(value float64, unit string, precision int) string {
	if u, ok := Lookup(unit); ok {
		return fmt.Sprintf("%.*f %s", precision, value, u.Abbreviation)
	}
	return fmt.Sprintf("%.*f %s", precision, value, unit)
}
