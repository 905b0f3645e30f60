package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/clients/email"
	"github.com/platewise/platewise-backend/internal/clients/payment"
	types "github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/pkg/ctxutil"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	log, _ := logger.New("test", "")
	return log
}

func identityCtx(tenantID, userID uuid.UUID, role string) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	})
}

// fakeResolver resolves allergens from a fixed map; unknown ingredients
// return ErrNotFound like the real repo.
type fakeResolver struct {
	allergens map[uuid.UUID][]string
	calls     int
}

func (f *fakeResolver) ResolveAllergens(_ context.Context, _ *gorm.DB, _ uuid.UUID, ingredientID uuid.UUID) ([]string, error) {
	f.calls++
	labels, ok := f.allergens[ingredientID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return labels, nil
}

type fakeRecipeRepo struct {
	recipes map[uuid.UUID]*types.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[uuid.UUID]*types.Recipe{}}
}

func (f *fakeRecipeRepo) Create(_ context.Context, _ *gorm.DB, recipe *types.Recipe) (*types.Recipe, error) {
	cp := *recipe
	cp.ID = uuid.New()
	f.recipes[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRecipeRepo) GetByID(_ context.Context, _ *gorm.DB, tenantID, recipeID uuid.UUID) (*types.Recipe, error) {
	r, ok := f.recipes[recipeID]
	if !ok || r.TenantID != tenantID || !r.IsActive {
		return nil, apperr.ErrNotFound
	}
	out := *r
	return &out, nil
}

func (f *fakeRecipeRepo) ListByTenant(_ context.Context, _ *gorm.DB, tenantID uuid.UUID, _ map[string]any) ([]*types.Recipe, error) {
	var out []*types.Recipe
	for _, r := range f.recipes {
		if r.TenantID == tenantID && r.IsActive {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) ListByCategory(ctx context.Context, tx *gorm.DB, tenantID, categoryID uuid.UUID) ([]*types.Recipe, error) {
	all, _ := f.ListByTenant(ctx, tx, tenantID, nil)
	var out []*types.Recipe
	for _, r := range all {
		if r.CategoryID != nil && *r.CategoryID == categoryID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) ListByStatus(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, status string) ([]*types.Recipe, error) {
	all, _ := f.ListByTenant(ctx, tx, tenantID, nil)
	var out []*types.Recipe
	for _, r := range all {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) ListByAllergen(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, allergen string) ([]*types.Recipe, error) {
	all, _ := f.ListByTenant(ctx, tx, tenantID, nil)
	var out []*types.Recipe
	for _, r := range all {
		for _, a := range r.Allergens {
			if a == allergen {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) CountByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (int64, error) {
	all, _ := f.ListByTenant(ctx, tx, tenantID, nil)
	return int64(len(all)), nil
}

func (f *fakeRecipeRepo) Update(_ context.Context, _ *gorm.DB, tenantID, recipeID uuid.UUID, updates map[string]any) error {
	r, ok := f.recipes[recipeID]
	if !ok || r.TenantID != tenantID || !r.IsActive {
		return apperr.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			r.Name = v.(string)
		case "description":
			r.Description = v.(string)
		case "category_id":
			id := v.(uuid.UUID)
			r.CategoryID = &id
		case "status":
			r.Status = v.(string)
		case "version":
			r.Version = v.(int)
		case "ingredients":
			r.Ingredients = v.(datatypes.JSONSlice[types.RecipeIngredient])
		case "allergens":
			r.Allergens = v.(datatypes.JSONSlice[string])
		case "updated_by":
			id := v.(uuid.UUID)
			r.UpdatedBy = &id
		case "preparation_instructions":
			r.PreparationInstructions = v.(string)
		case "cooking_instructions":
			r.CookingInstructions = v.(string)
		case "serving_size":
			r.ServingSize = v.(float64)
		case "serving_unit":
			r.ServingUnit = v.(string)
		case "sell_price":
			r.SellPrice = v.(float64)
		}
	}
	return nil
}

func (f *fakeRecipeRepo) Deactivate(_ context.Context, _ *gorm.DB, tenantID, recipeID uuid.UUID) error {
	r, ok := f.recipes[recipeID]
	if !ok || r.TenantID != tenantID || !r.IsActive {
		return apperr.ErrNotFound
	}
	r.IsActive = false
	return nil
}

type fakeSubscriptionRepo struct {
	subs map[uuid.UUID]*types.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[uuid.UUID]*types.Subscription{}}
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, _ *gorm.DB, sub *types.Subscription) (*types.Subscription, error) {
	cp := *sub
	cp.ID = uuid.New()
	f.subs[cp.TenantID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeSubscriptionRepo) GetByTenant(_ context.Context, _ *gorm.DB, tenantID uuid.UUID) (*types.Subscription, error) {
	s, ok := f.subs[tenantID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeSubscriptionRepo) Update(_ context.Context, _ *gorm.DB, tenantID uuid.UUID, updates map[string]any) error {
	s, ok := f.subs[tenantID]
	if !ok {
		return apperr.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "plan":
			s.Plan = v.(string)
		case "status":
			s.Status = v.(string)
		case "features":
			s.Features = v.(datatypes.JSONType[types.PlanFeatures])
		case "last_payment_date":
			t := v.(time.Time)
			s.LastPaymentDate = &t
		case "next_payment_date":
			t := v.(time.Time)
			s.NextPaymentDate = &t
		case "end_date":
			s.EndDate = v.(time.Time)
		}
	}
	return nil
}

func (f *fakeSubscriptionRepo) ListAll(_ context.Context, _ *gorm.DB, filters map[string]any) ([]*types.Subscription, error) {
	var out []*types.Subscription
	for _, s := range f.subs {
		if plan, ok := filters["plan"]; ok && s.Plan != plan.(string) {
			continue
		}
		if status, ok := filters["status"]; ok && s.Status != status.(string) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) Cancel(_ context.Context, _ *gorm.DB, tenantID uuid.UUID) error {
	s, ok := f.subs[tenantID]
	if !ok {
		return apperr.ErrNotFound
	}
	now := time.Now().UTC()
	s.Status = types.SubscriptionStatusCanceled
	s.CanceledAt = &now
	return nil
}

type fakeTenantRepo struct {
	tenants map[uuid.UUID]*types.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[uuid.UUID]*types.Tenant{}}
}

func (f *fakeTenantRepo) Create(_ context.Context, _ *gorm.DB, tenant *types.Tenant) (*types.Tenant, error) {
	cp := *tenant
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.tenants[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, _ *gorm.DB, tenantID uuid.UUID) (*types.Tenant, error) {
	t, ok := f.tenants[tenantID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (f *fakeTenantRepo) Update(_ context.Context, _ *gorm.DB, tenantID uuid.UUID, updates map[string]any) error {
	t, ok := f.tenants[tenantID]
	if !ok {
		return apperr.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		t.Name = v.(string)
	}
	if v, ok := updates["contact_email"]; ok {
		t.ContactEmail = v.(string)
	}
	return nil
}

func (f *fakeTenantRepo) Deactivate(_ context.Context, _ *gorm.DB, tenantID uuid.UUID) error {
	t, ok := f.tenants[tenantID]
	if !ok {
		return apperr.ErrNotFound
	}
	t.IsActive = false
	return nil
}

type fakePaymentProvider struct {
	customers     int
	subscriptions int
	updates       int
	cancels       int
	status        string
}

func (f *fakePaymentProvider) Name() string { return "fake" }

func (f *fakePaymentProvider) CreateCustomer(_ context.Context, tenantID uuid.UUID, _, _ string) (string, error) {
	f.customers++
	return "cus_" + tenantID.String(), nil
}

func (f *fakePaymentProvider) CreateSubscription(_ context.Context, _, _ string, _ string) (*payment.SubscriptionResult, error) {
	f.subscriptions++
	status := f.status
	if status == "" {
		status = types.SubscriptionStatusActive
	}
	return &payment.SubscriptionResult{SubscriptionID: "sub_fake", Status: status}, nil
}

func (f *fakePaymentProvider) UpdateSubscription(_ context.Context, _, _ string) error {
	f.updates++
	return nil
}

func (f *fakePaymentProvider) CancelSubscription(_ context.Context, _ string) error {
	f.cancels++
	return nil
}

type fakeMailer struct {
	sent []email.SendEmailRequest
}

func (f *fakeMailer) Send(_ context.Context, req email.SendEmailRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

type fakeInventoryRepo struct {
	items map[uuid.UUID]*types.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: map[uuid.UUID]*types.InventoryItem{}}
}

func (f *fakeInventoryRepo) add(item *types.InventoryItem) *types.InventoryItem {
	cp := *item
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	cp.IsActive = true
	f.items[cp.ID] = &cp
	return &cp
}

func (f *fakeInventoryRepo) Create(_ context.Context, _ *gorm.DB, item *types.InventoryItem) (*types.InventoryItem, error) {
	return f.add(item), nil
}

func (f *fakeInventoryRepo) GetByID(_ context.Context, _ *gorm.DB, tenantID, itemID uuid.UUID) (*types.InventoryItem, error) {
	it, ok := f.items[itemID]
	if !ok || it.TenantID != tenantID || !it.IsActive {
		return nil, apperr.ErrNotFound
	}
	out := *it
	return &out, nil
}

func (f *fakeInventoryRepo) ListByTenant(_ context.Context, _ *gorm.DB, tenantID uuid.UUID, _ map[string]any) ([]*types.InventoryItem, error) {
	var out []*types.InventoryItem
	for _, it := range f.items {
		if it.TenantID == tenantID && it.IsActive {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) ListByIngredient(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID) ([]*types.InventoryItem, error) {
	all, _ := f.ListByTenant(ctx, tx, tenantID, nil)
	var out []*types.InventoryItem
	for _, it := range all {
		if it.IngredientID == ingredientID {
			out = append(out, it)
		}
	}
	return out, nil
}

func matchLocation(item *types.InventoryItem, locationID *uuid.UUID) bool {
	if locationID == nil {
		return true
	}
	return item.LocationID != nil && *item.LocationID == *locationID
}

func (f *fakeInventoryRepo) ListExpiringBetween(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, from, to time.Time, locationID *uuid.UUID) ([]*types.InventoryItem, error) {
	all, _ := f.ListByTenant(ctx, tx, tenantID, nil)
	var out []*types.InventoryItem
	for _, it := range all {
		if !it.ExpiryDate.Before(from) && it.ExpiryDate.Before(to) && matchLocation(it, locationID) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) ListExpiredBefore(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, cutoff time.Time, locationID *uuid.UUID) ([]*types.InventoryItem, error) {
	all, _ := f.ListByTenant(ctx, tx, tenantID, nil)
	var out []*types.InventoryItem
	for _, it := range all {
		if it.ExpiryDate.Before(cutoff) && matchLocation(it, locationID) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) AdjustQuantity(_ context.Context, _ *gorm.DB, tenantID, itemID uuid.UUID, delta float64) (*types.InventoryItem, error) {
	it, ok := f.items[itemID]
	if !ok || it.TenantID != tenantID || !it.IsActive {
		return nil, apperr.ErrNotFound
	}
	if it.Quantity+delta < 0 {
		return nil, apperr.ErrInvalidArgument
	}
	it.Quantity += delta
	out := *it
	return &out, nil
}

func (f *fakeInventoryRepo) Update(_ context.Context, _ *gorm.DB, tenantID, itemID uuid.UUID, updates map[string]any) error {
	it, ok := f.items[itemID]
	if !ok || it.TenantID != tenantID || !it.IsActive {
		return apperr.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "quantity":
			it.Quantity = v.(float64)
		case "unit":
			it.Unit = v.(string)
		case "expiry_date":
			it.ExpiryDate = v.(time.Time)
		case "batch_number":
			it.BatchNumber = v.(string)
		case "storage_location":
			it.StorageLocation = v.(string)
		case "supplier":
			it.Supplier = v.(string)
		case "cost":
			it.Cost = v.(float64)
		case "location_id":
			id := v.(uuid.UUID)
			it.LocationID = &id
		}
	}
	return nil
}

func (f *fakeInventoryRepo) Deactivate(_ context.Context, _ *gorm.DB, tenantID, itemID uuid.UUID) error {
	it, ok := f.items[itemID]
	if !ok || it.TenantID != tenantID || !it.IsActive {
		return apperr.ErrNotFound
	}
	it.IsActive = false
	return nil
}

type fakeIngredientRepo struct {
	ingredients map[uuid.UUID]*types.Ingredient
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{ingredients: map[uuid.UUID]*types.Ingredient{}}
}

func (f *fakeIngredientRepo) add(ing *types.Ingredient) *types.Ingredient {
	cp := *ing
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	cp.IsActive = true
	f.ingredients[cp.ID] = &cp
	return &cp
}

func (f *fakeIngredientRepo) Create(_ context.Context, _ *gorm.DB, ing *types.Ingredient) (*types.Ingredient, error) {
	return f.add(ing), nil
}

func (f *fakeIngredientRepo) GetByID(_ context.Context, _ *gorm.DB, tenantID, ingredientID uuid.UUID) (*types.Ingredient, error) {
	ing, ok := f.ingredients[ingredientID]
	if !ok || ing.TenantID != tenantID {
		return nil, apperr.ErrNotFound
	}
	out := *ing
	return &out, nil
}

func (f *fakeIngredientRepo) GetByIDs(_ context.Context, _ *gorm.DB, tenantID uuid.UUID, ids []uuid.UUID) ([]*types.Ingredient, error) {
	var out []*types.Ingredient
	for _, id := range ids {
		if ing, ok := f.ingredients[id]; ok && ing.TenantID == tenantID {
			cp := *ing
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeIngredientRepo) ListByTenant(_ context.Context, _ *gorm.DB, tenantID uuid.UUID, _ map[string]any) ([]*types.Ingredient, error) {
	var out []*types.Ingredient
	for _, ing := range f.ingredients {
		if ing.TenantID == tenantID {
			cp := *ing
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeIngredientRepo) Update(_ context.Context, _ *gorm.DB, tenantID, ingredientID uuid.UUID, updates map[string]any) error {
	ing, ok := f.ingredients[ingredientID]
	if !ok || ing.TenantID != tenantID {
		return apperr.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		ing.Name = v.(string)
	}
	if v, ok := updates["allergens"]; ok {
		ing.Allergens = v.(datatypes.JSONSlice[string])
	}
	return nil
}

func (f *fakeIngredientRepo) Delete(_ context.Context, _ *gorm.DB, tenantID, ingredientID uuid.UUID) error {
	ing, ok := f.ingredients[ingredientID]
	if !ok || ing.TenantID != tenantID {
		return apperr.ErrNotFound
	}
	delete(f.ingredients, ingredientID)
	return nil
}

type fakeLocationRepo struct {
	locations map[uuid.UUID]*types.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[uuid.UUID]*types.Location{}}
}

func (f *fakeLocationRepo) Create(_ context.Context, _ *gorm.DB, location *types.Location) (*types.Location, error) {
	cp := *location
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.locations[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, _ *gorm.DB, tenantID, locationID uuid.UUID) (*types.Location, error) {
	l, ok := f.locations[locationID]
	if !ok || l.TenantID != tenantID {
		return nil, apperr.ErrNotFound
	}
	out := *l
	return &out, nil
}

func (f *fakeLocationRepo) ListByTenant(_ context.Context, _ *gorm.DB, tenantID uuid.UUID) ([]*types.Location, error) {
	var out []*types.Location
	for _, l := range f.locations {
		if l.TenantID == tenantID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) CountByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (int64, error) {
	all, _ := f.ListByTenant(ctx, tx, tenantID)
	return int64(len(all)), nil
}

func (f *fakeLocationRepo) Update(_ context.Context, _ *gorm.DB, tenantID, locationID uuid.UUID, updates map[string]any) error {
	l, ok := f.locations[locationID]
	if !ok || l.TenantID != tenantID {
		return apperr.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		l.Name = v.(string)
	}
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*types.MenuItemCategory
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uuid.UUID]*types.MenuItemCategory{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, _ *gorm.DB, category *types.MenuItemCategory) (*types.MenuItemCategory, error) {
	cp := *category
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.categories[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, _ *gorm.DB, tenantID, categoryID uuid.UUID) (*types.MenuItemCategory, error) {
	c, ok := f.categories[categoryID]
	if !ok || c.TenantID != tenantID {
		return nil, apperr.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCategoryRepo) ListByTenant(_ context.Context, _ *gorm.DB, tenantID uuid.UUID) ([]*types.MenuItemCategory, error) {
	var out []*types.MenuItemCategory
	for _, c := range f.categories {
		if c.TenantID == tenantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, _ *gorm.DB, tenantID, categoryID uuid.UUID, updates map[string]any) error {
	c, ok := f.categories[categoryID]
	if !ok || c.TenantID != tenantID {
		return apperr.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, _ *gorm.DB, tenantID, categoryID uuid.UUID) error {
	c, ok := f.categories[categoryID]
	if !ok || c.TenantID != tenantID {
		return apperr.ErrNotFound
	}
	delete(f.categories, categoryID)
	return nil
}

type fakeUserRepo struct {
	count int64
}

func (f *fakeUserRepo) Create(_ context.Context, _ *gorm.DB, user *types.User) (*types.User, error) {
	f.count++
	out := *user
	out.ID = uuid.New()
	return &out, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ *gorm.DB, _, _ uuid.UUID) (*types.User, error) {
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ *gorm.DB, _ string) (*types.User, error) {
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, _ *gorm.DB, _ string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) ListByTenant(_ context.Context, _ *gorm.DB, _ uuid.UUID) ([]*types.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountByTenant(_ context.Context, _ *gorm.DB, _ uuid.UUID) (int64, error) {
	return f.count, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *gorm.DB, _, _ uuid.UUID, _ map[string]any) error {
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ *gorm.DB, _, _ uuid.UUID) error {
	return nil
}

type fakeLabelRepo struct {
	count int64
}

func (f *fakeLabelRepo) Create(_ context.Context, _ *gorm.DB, label *types.Label) (*types.Label, error) {
	f.count++
	out := *label
	out.ID = uuid.New()
	out.CreatedAt = time.Now().UTC()
	return &out, nil
}

func (f *fakeLabelRepo) GetByID(_ context.Context, _ *gorm.DB, _, _ uuid.UUID) (*types.Label, error) {
	return nil, apperr.ErrNotFound
}

func (f *fakeLabelRepo) ListByTenant(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ map[string]any) ([]*types.Label, error) {
	return nil, nil
}

func (f *fakeLabelRepo) CountCreatedBetween(_ context.Context, _ *gorm.DB, _ uuid.UUID, _, _ time.Time) (int64, error) {
	return f.count, nil
}

type fakeUsageCache struct {
	counts map[string]int64
	incrs  int
}

func newFakeUsageCache() *fakeUsageCache {
	return &fakeUsageCache{counts: map[string]int64{}}
}

func cacheKey(tenantID uuid.UUID, month time.Time) string {
	return tenantID.String() + ":" + month.Format("2006-01")
}

func (f *fakeUsageCache) GetLabelCount(_ context.Context, tenantID uuid.UUID, month time.Time) (int64, bool, error) {
	v, ok := f.counts[cacheKey(tenantID, month)]
	return v, ok, nil
}

func (f *fakeUsageCache) SetLabelCount(_ context.Context, tenantID uuid.UUID, month time.Time, count int64) error {
	f.counts[cacheKey(tenantID, month)] = count
	return nil
}

// IncrLabelCount bumps only keys that already exist, matching the client's
// guarded increment. An absent key stays absent so reads fall back to the
// label table.
func (f *fakeUsageCache) IncrLabelCount(_ context.Context, tenantID uuid.UUID, month time.Time) error {
	f.incrs++
	key := cacheKey(tenantID, month)
	if _, ok := f.counts[key]; ok {
		f.counts[key]++
	}
	return nil
}

func (f *fakeUsageCache) Close() error { return nil }
