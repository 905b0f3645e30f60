package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
)

func TestLabelCreateValidatesTargetAndType(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	ctx := identityCtx(tenantID, userID, types.RoleStaff)

	recipes := newFakeRecipeRepo()
	inventory := newFakeInventoryRepo()
	labels := &fakeLabelRepo{}
	svc := NewLabelService(nil, testLogger(), labels, recipes, inventory, nil)

	recipe, _ := recipes.Create(ctx, nil, &types.Recipe{
		TenantID: tenantID,
		Name:     "Fish Pie",
		Status:   types.RecipeStatusActive,
		IsActive: true,
	})

	if _, err := svc.Create(ctx, CreateLabelInput{Type: "sticker", RecipeID: &recipe.ID}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("bad type: err=%v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Create(ctx, CreateLabelInput{Type: types.LabelTypeExpiry}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("no target: err=%v, want ErrInvalidArgument", err)
	}
	missing := uuid.New()
	if _, err := svc.Create(ctx, CreateLabelInput{Type: types.LabelTypeExpiry, RecipeID: &missing}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing recipe: err=%v, want ErrNotFound", err)
	}

	label, err := svc.Create(ctx, CreateLabelInput{
		Type:     types.LabelTypeAllergen,
		RecipeID: &recipe.ID,
		Content:  map[string]any{"allergens": []string{"Fish"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if label.PrintedBy != userID {
		t.Fatalf("printed_by=%v, want %v", label.PrintedBy, userID)
	}
}

func TestLabelCreateFeedsUsageCache(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	ctx := identityCtx(tenantID, userID, types.RoleStaff)

	recipes := newFakeRecipeRepo()
	recipe, _ := recipes.Create(ctx, nil, &types.Recipe{
		TenantID: tenantID,
		Name:     "Chowder",
		IsActive: true,
	})

	subFx := newSubscriptionFixture(t)
	cache := newFakeUsageCache()
	usage := NewUsageService(testLogger(), subFx.svc, &fakeUserRepo{}, newFakeLocationRepo(), recipes, &fakeLabelRepo{}, cache)
	svc := NewLabelService(nil, testLogger(), &fakeLabelRepo{}, recipes, newFakeInventoryRepo(), usage)

	// The quota check before a create primes the cache, as on a real request.
	if _, err := usage.LabelCountThisMonth(ctx, tenantID); err != nil {
		t.Fatalf("LabelCountThisMonth: %v", err)
	}

	if _, err := svc.Create(ctx, CreateLabelInput{Type: types.LabelTypePrep, RecipeID: &recipe.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cache.incrs != 1 {
		t.Fatalf("cache increments=%d, want 1", cache.incrs)
	}

	from, _ := monthWindow(time.Now())
	count, found, _ := cache.GetLabelCount(ctx, tenantID, from)
	if !found || count != 1 {
		t.Fatalf("cached count=%d found=%v, want 1", count, found)
	}
}
