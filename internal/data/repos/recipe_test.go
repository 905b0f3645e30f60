package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/platewise/platewise-backend/internal/data/repos/testutil"
	types "github.com/platewise/platewise-backend/internal/domain"
	pkgerrors "github.com/platewise/platewise-backend/internal/pkg/errors"
)

func TestRecipeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRecipeRepo(db, testutil.Logger(t))
	ctx := context.Background()

	tenantID := uuid.New()
	otherTenantID := uuid.New()
	ingredientID := uuid.New()

	created, err := repo.Create(ctx, tx, &types.Recipe{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "Beef Lasagna",
		Status:   types.RecipeStatusDraft,
		Version:  1,
		Ingredients: datatypes.NewJSONSlice([]types.RecipeIngredient{
			{IngredientID: ingredientID, Quantity: 500, Unit: "g"},
		}),
		Allergens: datatypes.NewJSONSlice([]string{"gluten", "milk"}),
		IsActive:  true,
		CreatedBy: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, tenantID, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Beef Lasagna" || len(got.Ingredients) != 1 {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	if _, err := repo.GetByID(ctx, tx, otherTenantID, created.ID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("GetByID (other tenant): want ErrNotFound, got %v", err)
	}

	byAllergen, err := repo.ListByAllergen(ctx, tx, tenantID, "gluten")
	if err != nil {
		t.Fatalf("ListByAllergen: %v", err)
	}
	if len(byAllergen) != 1 || byAllergen[0].ID != created.ID {
		t.Fatalf("ListByAllergen: unexpected result: %+v", byAllergen)
	}

	byAllergen, err = repo.ListByAllergen(ctx, tx, tenantID, "peanuts")
	if err != nil {
		t.Fatalf("ListByAllergen (absent): %v", err)
	}
	if len(byAllergen) != 0 {
		t.Fatalf("ListByAllergen (absent): expected no rows, got %d", len(byAllergen))
	}

	count, err := repo.CountByTenant(ctx, tx, tenantID)
	if err != nil {
		t.Fatalf("CountByTenant: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountByTenant: want=1 got=%d", count)
	}

	if err := repo.Deactivate(ctx, tx, tenantID, created.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := repo.GetByID(ctx, tx, tenantID, created.ID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("GetByID (deactivated): want ErrNotFound, got %v", err)
	}
	count, err = repo.CountByTenant(ctx, tx, tenantID)
	if err != nil {
		t.Fatalf("CountByTenant (after deactivate): %v", err)
	}
	if count != 0 {
		t.Fatalf("CountByTenant (after deactivate): want=0 got=%d", count)
	}
}

func TestRecipeRepoUpdateMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRecipeRepo(db, testutil.Logger(t))
	err := repo.Update(context.Background(), tx, uuid.New(), uuid.New(), map[string]any{"name": "x"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("Update (missing): want ErrNotFound, got %v", err)
	}
}
