package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/platewise/platewise-backend/internal/domain"
)

type usageFixture struct {
	svc      UsageService
	subs     *fakeSubscriptionRepo
	users    *fakeUserRepo
	labels   *fakeLabelRepo
	cache    *fakeUsageCache
	tenantID uuid.UUID
	ctx      context.Context
}

func newUsageFixture(t *testing.T, plan, status string) *usageFixture {
	t.Helper()
	subFx := newSubscriptionFixture(t)
	subFx.seedSubscription(t, plan, status)

	users := &fakeUserRepo{}
	labels := &fakeLabelRepo{}
	cache := newFakeUsageCache()
	svc := NewUsageService(
		testLogger(),
		subFx.svc,
		users,
		newFakeLocationRepo(),
		newFakeRecipeRepo(),
		labels,
		cache,
	)
	return &usageFixture{
		svc:      svc,
		subs:     subFx.subs,
		users:    users,
		labels:   labels,
		cache:    cache,
		tenantID: subFx.tenantID,
		ctx:      subFx.ctx,
	}
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 15, 0, 0, time.UTC)
	from, to := monthWindow(now)
	if !from.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("from=%v", from)
	}
	if !to.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("to=%v", to)
	}

	// December rolls into the next year.
	from, to = monthWindow(time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC))
	if !from.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("december window: from=%v to=%v", from, to)
	}
}

func TestCheckUserLimitCountsAgainstPlan(t *testing.T) {
	fx := newUsageFixture(t, types.PlanBasic, types.SubscriptionStatusActive)

	// Basic allows 3 users.
	fx.users.count = 2
	ok, err := fx.svc.CheckUserLimit(fx.ctx, fx.tenantID)
	if err != nil || !ok {
		t.Fatalf("count=2: ok=%v err=%v, want allowed", ok, err)
	}
	fx.users.count = 3
	ok, err = fx.svc.CheckUserLimit(fx.ctx, fx.tenantID)
	if err != nil || ok {
		t.Fatalf("count=3: ok=%v err=%v, want full", ok, err)
	}
}

func TestLabelCountPrefersCache(t *testing.T) {
	fx := newUsageFixture(t, types.PlanBasic, types.SubscriptionStatusActive)
	from, _ := monthWindow(time.Now())

	fx.labels.count = 10
	if err := fx.cache.SetLabelCount(fx.ctx, fx.tenantID, from, 42); err != nil {
		t.Fatalf("SetLabelCount: %v", err)
	}

	count, err := fx.svc.LabelCountThisMonth(fx.ctx, fx.tenantID)
	if err != nil {
		t.Fatalf("LabelCountThisMonth: %v", err)
	}
	if count != 42 {
		t.Fatalf("count=%d, want cached 42", count)
	}
}

func TestLabelCountFallsBackAndPrimes(t *testing.T) {
	fx := newUsageFixture(t, types.PlanBasic, types.SubscriptionStatusActive)
	fx.labels.count = 7

	count, err := fx.svc.LabelCountThisMonth(fx.ctx, fx.tenantID)
	if err != nil {
		t.Fatalf("LabelCountThisMonth: %v", err)
	}
	if count != 7 {
		t.Fatalf("count=%d, want 7 from rows", count)
	}

	from, _ := monthWindow(time.Now())
	cached, found, _ := fx.cache.GetLabelCount(fx.ctx, fx.tenantID, from)
	if !found || cached != 7 {
		t.Fatalf("cache after miss: found=%v count=%d, want primed 7", found, cached)
	}
}

func TestRecordLabelPrintedIncrementsCache(t *testing.T) {
	fx := newUsageFixture(t, types.PlanBasic, types.SubscriptionStatusActive)
	from, _ := monthWindow(time.Now())
	_ = fx.cache.SetLabelCount(fx.ctx, fx.tenantID, from, 5)

	fx.svc.RecordLabelPrinted(fx.ctx, fx.tenantID)

	cached, _, _ := fx.cache.GetLabelCount(fx.ctx, fx.tenantID, from)
	if cached != 6 {
		t.Fatalf("cached count=%d, want 6", cached)
	}
}

func TestRecordLabelPrintedSkipsEvictedKey(t *testing.T) {
	fx := newUsageFixture(t, types.PlanBasic, types.SubscriptionStatusActive)
	from, _ := monthWindow(time.Now())

	// 999 labels printed against the basic limit of 1000.
	fx.labels.count = 999
	_ = fx.cache.SetLabelCount(fx.ctx, fx.tenantID, from, 999)

	// The counter key disappears mid-month, as under eviction or a flush.
	delete(fx.cache.counts, cacheKey(fx.tenantID, from))

	fx.labels.count = 1000
	fx.svc.RecordLabelPrinted(fx.ctx, fx.tenantID)

	// Recording must not recreate the key at 1; the next read re-counts rows.
	if _, found, _ := fx.cache.GetLabelCount(fx.ctx, fx.tenantID, from); found {
		t.Fatal("counter key recreated after eviction")
	}
	count, err := fx.svc.LabelCountThisMonth(fx.ctx, fx.tenantID)
	if err != nil {
		t.Fatalf("LabelCountThisMonth: %v", err)
	}
	if count != 1000 {
		t.Fatalf("count=%d, want 1000 from rows", count)
	}
	ok, err := fx.svc.CheckLabelLimit(fx.ctx, fx.tenantID)
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v, want limit reached", ok, err)
	}
}

func TestRecipeQuotaFreesCapacityOnDelete(t *testing.T) {
	subFx := newSubscriptionFixture(t)
	subFx.seedSubscription(t, types.PlanBasic, types.SubscriptionStatusActive)

	recipes := newFakeRecipeRepo()
	resolver := &fakeResolver{allergens: map[uuid.UUID][]string{}}
	recipeSvc := NewRecipeService(nil, testLogger(), recipes, NewAllergenAggregator(resolver, testLogger()))
	usage := NewUsageService(
		testLogger(),
		subFx.svc,
		&fakeUserRepo{},
		newFakeLocationRepo(),
		recipes,
		&fakeLabelRepo{},
		newFakeUsageCache(),
	)

	// Fill the basic plan's quota of 100 recipes.
	var last *types.Recipe
	for i := 0; i < 100; i++ {
		r, err := recipes.Create(subFx.ctx, nil, &types.Recipe{
			TenantID: subFx.tenantID,
			Name:     fmt.Sprintf("Recipe %d", i),
			Status:   types.RecipeStatusActive,
			Version:  1,
			IsActive: true,
		})
		if err != nil {
			t.Fatalf("seeding recipe %d: %v", i, err)
		}
		last = r
	}

	ok, err := usage.CheckRecipeLimit(subFx.ctx, subFx.tenantID)
	if err != nil || ok {
		t.Fatalf("at quota: ok=%v err=%v, want blocked", ok, err)
	}

	if err := recipeSvc.Delete(subFx.ctx, last.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	ok, err = usage.CheckRecipeLimit(subFx.ctx, subFx.tenantID)
	if err != nil || !ok {
		t.Fatalf("after delete: ok=%v err=%v, want allowed", ok, err)
	}

	milk := uuid.New()
	resolver.allergens[milk] = []string{"Milk"}
	if _, err := recipeSvc.Create(subFx.ctx, CreateRecipeInput{
		Name:        "Panna Cotta",
		Ingredients: []types.RecipeIngredient{{IngredientID: milk, Quantity: 250, Unit: "ml"}},
	}); err != nil {
		t.Fatalf("Create after freeing capacity: %v", err)
	}
}

func TestGetSummary(t *testing.T) {
	fx := newUsageFixture(t, types.PlanProfessional, types.SubscriptionStatusTrialing)
	fx.users.count = 4
	fx.labels.count = 120

	summary, err := fx.svc.GetSummary(fx.ctx)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.Plan != types.PlanProfessional || summary.Status != types.SubscriptionStatusTrialing {
		t.Fatalf("plan=%q status=%q", summary.Plan, summary.Status)
	}
	if summary.Users.Current != 4 || summary.Users.Limit != 10 {
		t.Fatalf("users=%+v, want 4/10", summary.Users)
	}
	if summary.LabelsThisMonth.Current != 120 || summary.LabelsThisMonth.Limit != 5000 {
		t.Fatalf("labels=%+v, want 120/5000", summary.LabelsThisMonth)
	}
	if !summary.FeatureFlags.AdvancedReporting {
		t.Fatal("advanced reporting flag missing on professional")
	}
}
