package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

const defaultExpiryThresholdDays = 3

// ExpiryReportOptions narrow an alert report. Nil fields take the defaults:
// expired items included, three-day threshold, every alert level, all
// locations.
type ExpiryReportOptions struct {
	LocationID     *uuid.UUID   `json:"location_id"`
	IncludeExpired *bool        `json:"include_expired"`
	DaysThreshold  *int         `json:"days_threshold"`
	AlertLevels    []AlertLevel `json:"alert_levels"`
}

type ReportParty struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ExpiryAlertReport struct {
	Tenant         ReportParty       `json:"tenant"`
	Location       *ReportParty      `json:"location,omitempty"`
	GeneratedAt    time.Time         `json:"generated_at"`
	DaysThreshold  int               `json:"days_threshold"`
	ExpiringSoon   []ExpiryAlertItem `json:"expiring_soon"`
	AlreadyExpired []ExpiryAlertItem `json:"already_expired"`
}

type ExpiryAlertService interface {
	// ExpiringItems lists items whose expiry falls within daysThreshold days
	// of today, classified and sorted soonest first.
	ExpiringItems(ctx context.Context, daysThreshold int, locationID *uuid.UUID) ([]ExpiryAlertItem, error)
	// ExpiredItems lists items already past expiry; every entry is critical.
	ExpiredItems(ctx context.Context, locationID *uuid.UUID) ([]ExpiryAlertItem, error)
	BuildReport(ctx context.Context, opts ExpiryReportOptions) (*ExpiryAlertReport, error)
}

type expiryAlertService struct {
	log            *logger.Logger
	inventoryRepo  repos.InventoryItemRepo
	ingredientRepo repos.IngredientRepo
	tenantRepo     repos.TenantRepo
	locationRepo   repos.LocationRepo
	now            func() time.Time
}

func NewExpiryAlertService(
	baseLog *logger.Logger,
	inventoryRepo repos.InventoryItemRepo,
	ingredientRepo repos.IngredientRepo,
	tenantRepo repos.TenantRepo,
	locationRepo repos.LocationRepo,
) ExpiryAlertService {
	return &expiryAlertService{
		log:            baseLog.With("service", "expiry_alert"),
		inventoryRepo:  inventoryRepo,
		ingredientRepo: ingredientRepo,
		tenantRepo:     tenantRepo,
		locationRepo:   locationRepo,
		now:            time.Now,
	}
}

func (s *expiryAlertService) ExpiringItems(ctx context.Context, daysThreshold int, locationID *uuid.UUID) ([]ExpiryAlertItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if daysThreshold < 0 {
		return nil, fmt.Errorf("days threshold cannot be negative: %w", apperr.ErrInvalidArgument)
	}
	today := startOfDay(s.now())
	// Half-open window: an item expiring exactly daysThreshold days out is
	// still included.
	items, err := s.inventoryRepo.ListExpiringBetween(ctx, nil, rd.TenantID, today, today.AddDate(0, 0, daysThreshold+1), locationID)
	if err != nil {
		return nil, err
	}
	return s.classify(ctx, nil, rd.TenantID, items, false)
}

func (s *expiryAlertService) ExpiredItems(ctx context.Context, locationID *uuid.UUID) ([]ExpiryAlertItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	today := startOfDay(s.now())
	items, err := s.inventoryRepo.ListExpiredBefore(ctx, nil, rd.TenantID, today, locationID)
	if err != nil {
		return nil, err
	}
	return s.classify(ctx, nil, rd.TenantID, items, true)
}

func (s *expiryAlertService) BuildReport(ctx context.Context, opts ExpiryReportOptions) (*ExpiryAlertReport, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}

	includeExpired := true
	if opts.IncludeExpired != nil {
		includeExpired = *opts.IncludeExpired
	}
	threshold := defaultExpiryThresholdDays
	if opts.DaysThreshold != nil {
		threshold = *opts.DaysThreshold
	}

	tenant, err := s.tenantRepo.GetByID(ctx, nil, rd.TenantID)
	if err != nil {
		return nil, fmt.Errorf("loading tenant: %w", err)
	}
	report := &ExpiryAlertReport{
		Tenant:        ReportParty{ID: tenant.ID, Name: tenant.Name},
		GeneratedAt:   s.now().UTC(),
		DaysThreshold: threshold,
	}
	if opts.LocationID != nil {
		location, lErr := s.locationRepo.GetByID(ctx, nil, rd.TenantID, *opts.LocationID)
		if lErr != nil {
			return nil, fmt.Errorf("loading location: %w", lErr)
		}
		report.Location = &ReportParty{ID: location.ID, Name: location.Name}
	}

	expiring, err := s.ExpiringItems(ctx, threshold, opts.LocationID)
	if err != nil {
		return nil, err
	}
	report.ExpiringSoon = filterByAlertLevel(expiring, opts.AlertLevels)

	if includeExpired {
		expired, eErr := s.ExpiredItems(ctx, opts.LocationID)
		if eErr != nil {
			return nil, eErr
		}
		report.AlreadyExpired = expired
	} else {
		report.AlreadyExpired = []ExpiryAlertItem{}
	}
	return report, nil
}

// classify joins items with their ingredient names and assigns alert levels.
// forceCritical marks every entry critical regardless of the computed band,
// used for the already-expired query whose window guarantees lateness.
func (s *expiryAlertService) classify(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, items []*types.InventoryItem, forceCritical bool) ([]ExpiryAlertItem, error) {
	names, err := s.ingredientNames(ctx, tx, tenantID, items)
	if err != nil {
		return nil, err
	}
	today := s.now()

	out := make([]ExpiryAlertItem, 0, len(items))
	for _, item := range items {
		days := DaysUntilExpiry(item.ExpiryDate, today)
		level := AlertLevelForDays(days)
		if forceCritical {
			level = AlertLevelCritical
		}
		out = append(out, ExpiryAlertItem{
			InventoryItemID: item.ID,
			IngredientName:  names[item.IngredientID],
			Quantity:        item.Quantity,
			Unit:            item.Unit,
			ExpiryDate:      item.ExpiryDate,
			DaysUntilExpiry: days,
			AlertLevel:      level,
		})
	}
	sortAlertItems(out)
	return out, nil
}

func (s *expiryAlertService) ingredientNames(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, items []*types.InventoryItem) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.IngredientID]; ok {
			continue
		}
		seen[item.IngredientID] = struct{}{}
		ids = append(ids, item.IngredientID)
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	ingredients, err := s.ingredientRepo.GetByIDs(ctx, tx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	for _, ing := range ingredients {
		names[ing.ID] = ing.Name
	}
	return names, nil
}

func filterByAlertLevel(items []ExpiryAlertItem, levels []AlertLevel) []ExpiryAlertItem {
	if len(levels) == 0 {
		return items
	}
	want := make(map[AlertLevel]struct{}, len(levels))
	for _, l := range levels {
		want[l] = struct{}{}
	}
	out := make([]ExpiryAlertItem, 0, len(items))
	for _, item := range items {
		if _, ok := want[item.AlertLevel]; ok {
			out = append(out, item)
		}
	}
	return out
}
