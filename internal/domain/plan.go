package domain

// Plan tiers.
const (
	PlanBasic        = "basic"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
	PlanCustom       = "custom"
)

// Feature keys accepted by the quota gate. Numeric keys are quotas, boolean
// keys are capability flags.
const (
	FeatureMaxUsers            = "max_users"
	FeatureMaxLocations        = "max_locations"
	FeatureMaxRecipes          = "max_recipes"
	FeatureMaxLabelsPerMonth   = "max_labels_per_month"
	FeatureWhiteLabeling       = "white_labeling"
	FeatureInventoryManagement = "inventory_management"
	FeatureAdvancedReporting   = "advanced_reporting"
	FeatureAPIAccess           = "api_access"
)

// PlanFeatures is the resolved quota/flag set a subscription carries. It is
// copied from the catalog at subscription create/update time, so historical
// subscriptions keep the limits they were sold with.
type PlanFeatures struct {
	MaxUsers            int  `json:"max_users"`
	MaxLocations        int  `json:"max_locations"`
	MaxRecipes          int  `json:"max_recipes"`
	MaxLabelsPerMonth   int  `json:"max_labels_per_month"`
	WhiteLabeling       bool `json:"white_labeling"`
	InventoryManagement bool `json:"inventory_management"`
	AdvancedReporting   bool `json:"advanced_reporting"`
	APIAccess           bool `json:"api_access"`
}

// planCatalog is built once at init and never mutated afterwards; reads are
// lock-free.
var planCatalog = map[string]PlanFeatures{
	PlanBasic: {
		MaxUsers:          3,
		MaxLocations:      1,
		MaxRecipes:        100,
		MaxLabelsPerMonth: 1000,
	},
	PlanProfessional: {
		MaxUsers:            10,
		MaxLocations:        3,
		MaxRecipes:          500,
		MaxLabelsPerMonth:   5000,
		InventoryManagement: true,
		AdvancedReporting:   true,
	},
	PlanEnterprise: {
		MaxUsers:            100,
		MaxLocations:        100,
		MaxRecipes:          10000,
		MaxLabelsPerMonth:   100000,
		WhiteLabeling:       true,
		InventoryManagement: true,
		AdvancedReporting:   true,
		APIAccess:           true,
	},
	PlanCustom: {
		MaxUsers:            999,
		MaxLocations:        999,
		MaxRecipes:          999999,
		MaxLabelsPerMonth:   999999,
		WhiteLabeling:       true,
		InventoryManagement: true,
		AdvancedReporting:   true,
		APIAccess:           true,
	},
}

func ValidPlan(plan string) bool {
	_, ok := planCatalog[plan]
	return ok
}

// PlanFeaturesFor returns the catalog entry for a plan tier. The second return
// is false for unknown tiers.
func PlanFeaturesFor(plan string) (PlanFeatures, bool) {
	f, ok := planCatalog[plan]
	return f, ok
}

// QuotaFor returns the numeric quota behind a feature key, or false when the
// key names a boolean flag or is unknown.
func (f PlanFeatures) QuotaFor(key string) (int, bool) {
	switch key {
	case FeatureMaxUsers:
		return f.MaxUsers, true
	case FeatureMaxLocations:
		return f.MaxLocations, true
	case FeatureMaxRecipes:
		return f.MaxRecipes, true
	case FeatureMaxLabelsPerMonth:
		return f.MaxLabelsPerMonth, true
	}
	return 0, false
}

// FlagFor returns the boolean flag behind a feature key, or false when the key
// names a numeric quota or is unknown.
func (f PlanFeatures) FlagFor(key string) (bool, bool) {
	switch key {
	case FeatureWhiteLabeling:
		return f.WhiteLabeling, true
	case FeatureInventoryManagement:
		return f.InventoryManagement, true
	case FeatureAdvancedReporting:
		return f.AdvancedReporting, true
	case FeatureAPIAccess:
		return f.APIAccess, true
	}
	return false, false
}
