package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type AlertLevel string

const (
	AlertLevelLow      AlertLevel = "low"
	AlertLevelMedium   AlertLevel = "medium"
	AlertLevelHigh     AlertLevel = "high"
	AlertLevelCritical AlertLevel = "critical"
)

// ExpiryAlertItem is derived reporting state, never persisted.
type ExpiryAlertItem struct {
	InventoryItemID uuid.UUID  `json:"inventory_item_id"`
	IngredientName  string     `json:"ingredient_name"`
	Quantity        float64    `json:"quantity"`
	Unit            string     `json:"unit"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	DaysUntilExpiry int        `json:"days_until_expiry"`
	AlertLevel      AlertLevel `json:"alert_level"`
}

func ValidAlertLevel(level AlertLevel) bool {
	switch level {
	case AlertLevelLow, AlertLevelMedium, AlertLevelHigh, AlertLevelCritical:
		return true
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntilExpiry floors both dates to the start of their UTC calendar day
// before subtracting, so time-of-day never shifts an item between bands.
func DaysUntilExpiry(expiry, today time.Time) int {
	diff := startOfDay(expiry).Sub(startOfDay(today))
	return int(diff / (24 * time.Hour))
}

// AlertLevelForDays maps a day count to its urgency band.
func AlertLevelForDays(days int) AlertLevel {
	switch {
	case days < 0:
		return AlertLevelCritical
	case days == 0:
		return AlertLevelHigh
	case days == 1:
		return AlertLevelMedium
	default:
		return AlertLevelLow
	}
}

// sortAlertItems orders ascending by days-until-expiry; ties keep input order.
func sortAlertItems(items []ExpiryAlertItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysUntilExpiry < items[j].DaysUntilExpiry
	})
}
