package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/platewise-backend/internal/data/repos/testutil"
	types "github.com/platewise/platewise-backend/internal/domain"
)

func TestInventoryItemRepoExpiryWindows(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewInventoryItemRepo(db, testutil.Logger(t))
	ctx := context.Background()

	tenantID := uuid.New()
	locationID := uuid.New()
	ingredientID := uuid.New()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	mk := func(offsetDays int, loc *uuid.UUID) *types.InventoryItem {
		item, err := repo.Create(ctx, tx, &types.InventoryItem{
			ID:           uuid.New(),
			TenantID:     tenantID,
			LocationID:   loc,
			IngredientID: ingredientID,
			Quantity:     10,
			Unit:         "kg",
			DeliveryDate: today.AddDate(0, 0, -7),
			ExpiryDate:   today.AddDate(0, 0, offsetDays),
			IsActive:     true,
			CreatedBy:    uuid.New(),
		})
		if err != nil {
			t.Fatalf("Create(offset=%d): %v", offsetDays, err)
		}
		return item
	}

	expired := mk(-2, nil)
	dueToday := mk(0, &locationID)
	dueSoon := mk(2, nil)
	farOut := mk(10, nil)

	expiring, err := repo.ListExpiringBetween(ctx, tx, tenantID, today, today.AddDate(0, 0, 4), nil)
	if err != nil {
		t.Fatalf("ListExpiringBetween: %v", err)
	}
	if len(expiring) != 2 || expiring[0].ID != dueToday.ID || expiring[1].ID != dueSoon.ID {
		t.Fatalf("ListExpiringBetween: unexpected rows: %+v", expiring)
	}

	expiring, err = repo.ListExpiringBetween(ctx, tx, tenantID, today, today.AddDate(0, 0, 4), &locationID)
	if err != nil {
		t.Fatalf("ListExpiringBetween (location): %v", err)
	}
	if len(expiring) != 1 || expiring[0].ID != dueToday.ID {
		t.Fatalf("ListExpiringBetween (location): unexpected rows: %+v", expiring)
	}

	pastDue, err := repo.ListExpiredBefore(ctx, tx, tenantID, today, nil)
	if err != nil {
		t.Fatalf("ListExpiredBefore: %v", err)
	}
	if len(pastDue) != 1 || pastDue[0].ID != expired.ID {
		t.Fatalf("ListExpiredBefore: unexpected rows: %+v", pastDue)
	}

	_ = farOut
}

func TestInventoryItemRepoAdjustQuantity(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewInventoryItemRepo(db, testutil.Logger(t))
	ctx := context.Background()

	tenantID := uuid.New()
	today := time.Now().UTC()

	item, err := repo.Create(ctx, tx, &types.InventoryItem{
		ID:           uuid.New(),
		TenantID:     tenantID,
		IngredientID: uuid.New(),
		Quantity:     5,
		Unit:         "kg",
		DeliveryDate: today,
		ExpiryDate:   today.AddDate(0, 0, 3),
		IsActive:     true,
		CreatedBy:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	adjusted, err := repo.AdjustQuantity(ctx, tx, tenantID, item.ID, -3)
	if err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	if adjusted.Quantity != 2 {
		t.Fatalf("AdjustQuantity: want=2 got=%v", adjusted.Quantity)
	}

	if _, err := repo.AdjustQuantity(ctx, tx, tenantID, item.ID, -10); err == nil {
		t.Fatalf("AdjustQuantity: expected error when going negative")
	}
}
