package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/platewise/platewise-backend/internal/domain"
)

type expiryFixture struct {
	svc       *expiryAlertService
	inventory *fakeInventoryRepo
	tenantID  uuid.UUID
	userID    uuid.UUID
	now       time.Time
	flour     *types.Ingredient
}

func newExpiryFixture(t *testing.T) *expiryFixture {
	t.Helper()
	inventory := newFakeInventoryRepo()
	ingredients := newFakeIngredientRepo()
	tenants := newFakeTenantRepo()
	locations := newFakeLocationRepo()

	tenant, _ := tenants.Create(nil, nil, &types.Tenant{Name: "Harbor Kitchen", ContactEmail: "ops@harborkitchen.test"})
	flour := ingredients.add(&types.Ingredient{TenantID: tenant.ID, Name: "Flour", DefaultUnit: "kg"})

	now := time.Date(2026, 8, 30, 11, 45, 0, 0, time.UTC)
	svc := &expiryAlertService{
		log:            testLogger().With("service", "expiry_alert"),
		inventoryRepo:  inventory,
		ingredientRepo: ingredients,
		tenantRepo:     tenants,
		locationRepo:   locations,
		now:            func() time.Time { return now },
	}
	return &expiryFixture{
		svc:       svc,
		inventory: inventory,
		tenantID:  tenant.ID,
		userID:    uuid.New(),
		now:       now,
		flour:     flour,
	}
}

func (fx *expiryFixture) addItem(dayOffset int, locationID *uuid.UUID) *types.InventoryItem {
	expiry := fx.now.AddDate(0, 0, dayOffset)
	return fx.inventory.add(&types.InventoryItem{
		TenantID:     fx.tenantID,
		IngredientID: fx.flour.ID,
		LocationID:   locationID,
		Quantity:     5,
		Unit:         "kg",
		DeliveryDate: fx.now.AddDate(0, 0, -7),
		ExpiryDate:   expiry,
	})
}

func TestBuildReportWindowAndBands(t *testing.T) {
	fx := newExpiryFixture(t)
	ctx := identityCtx(fx.tenantID, fx.userID, types.RoleManager)

	for _, offset := range []int{-2, 0, 1, 2, 3, 4} {
		fx.addItem(offset, nil)
	}

	report, err := fx.svc.BuildReport(ctx, ExpiryReportOptions{})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.Tenant.Name != "Harbor Kitchen" {
		t.Fatalf("tenant name=%q", report.Tenant.Name)
	}
	if report.DaysThreshold != 3 {
		t.Fatalf("default threshold=%d, want 3", report.DaysThreshold)
	}

	// The item four days out sits outside the default window.
	if len(report.ExpiringSoon) != 4 {
		t.Fatalf("expiring soon count=%d, want 4", len(report.ExpiringSoon))
	}
	wantDays := []int{0, 1, 2, 3}
	wantLevels := []AlertLevel{AlertLevelHigh, AlertLevelMedium, AlertLevelLow, AlertLevelLow}
	for i, item := range report.ExpiringSoon {
		if item.DaysUntilExpiry != wantDays[i] {
			t.Fatalf("item %d: days=%d, want %d (ascending order)", i, item.DaysUntilExpiry, wantDays[i])
		}
		if item.AlertLevel != wantLevels[i] {
			t.Fatalf("item %d: level=%q, want %q", i, item.AlertLevel, wantLevels[i])
		}
		if item.IngredientName != "Flour" {
			t.Fatalf("item %d: ingredient name=%q", i, item.IngredientName)
		}
	}

	if len(report.AlreadyExpired) != 1 {
		t.Fatalf("expired count=%d, want 1", len(report.AlreadyExpired))
	}
	expired := report.AlreadyExpired[0]
	if expired.DaysUntilExpiry != -2 || expired.AlertLevel != AlertLevelCritical {
		t.Fatalf("expired item: days=%d level=%q, want -2/critical", expired.DaysUntilExpiry, expired.AlertLevel)
	}
}

func TestBuildReportExcludesExpiredWhenAsked(t *testing.T) {
	fx := newExpiryFixture(t)
	ctx := identityCtx(fx.tenantID, fx.userID, types.RoleManager)
	fx.addItem(-1, nil)
	fx.addItem(1, nil)

	includeExpired := false
	report, err := fx.svc.BuildReport(ctx, ExpiryReportOptions{IncludeExpired: &includeExpired})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.AlreadyExpired) != 0 {
		t.Fatalf("expired count=%d, want 0", len(report.AlreadyExpired))
	}
	if len(report.ExpiringSoon) != 1 {
		t.Fatalf("expiring soon count=%d, want 1", len(report.ExpiringSoon))
	}
}

func TestBuildReportCustomThreshold(t *testing.T) {
	fx := newExpiryFixture(t)
	ctx := identityCtx(fx.tenantID, fx.userID, types.RoleManager)
	fx.addItem(2, nil)
	fx.addItem(6, nil)
	fx.addItem(8, nil)

	threshold := 7
	report, err := fx.svc.BuildReport(ctx, ExpiryReportOptions{DaysThreshold: &threshold})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.ExpiringSoon) != 2 {
		t.Fatalf("expiring soon count=%d, want 2 within 7 days", len(report.ExpiringSoon))
	}
}

func TestBuildReportAlertLevelFilter(t *testing.T) {
	fx := newExpiryFixture(t)
	ctx := identityCtx(fx.tenantID, fx.userID, types.RoleManager)
	fx.addItem(0, nil)
	fx.addItem(1, nil)
	fx.addItem(3, nil)

	report, err := fx.svc.BuildReport(ctx, ExpiryReportOptions{
		AlertLevels: []AlertLevel{AlertLevelHigh},
	})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.ExpiringSoon) != 1 || report.ExpiringSoon[0].AlertLevel != AlertLevelHigh {
		t.Fatalf("filtered items=%v, want single high entry", report.ExpiringSoon)
	}
}

func TestBuildReportLocationScoping(t *testing.T) {
	fx := newExpiryFixture(t)
	ctx := identityCtx(fx.tenantID, fx.userID, types.RoleManager)

	location, _ := fx.svc.locationRepo.(*fakeLocationRepo).Create(nil, nil, &types.Location{
		TenantID: fx.tenantID,
		Name:     "Dockside",
		IsActive: true,
	})
	fx.addItem(1, &location.ID)
	fx.addItem(1, nil)

	report, err := fx.svc.BuildReport(ctx, ExpiryReportOptions{LocationID: &location.ID})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.Location == nil || report.Location.Name != "Dockside" {
		t.Fatalf("location=%v, want Dockside", report.Location)
	}
	if len(report.ExpiringSoon) != 1 {
		t.Fatalf("expiring soon count=%d, want only the scoped item", len(report.ExpiringSoon))
	}
}

func TestExpiringItemsRejectsNegativeThreshold(t *testing.T) {
	fx := newExpiryFixture(t)
	ctx := identityCtx(fx.tenantID, fx.userID, types.RoleManager)
	if _, err := fx.svc.ExpiringItems(ctx, -1, nil); err == nil {
		t.Fatal("expected error for negative threshold")
	}
}
