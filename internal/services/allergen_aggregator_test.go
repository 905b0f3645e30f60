package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"

	types "github.com/platewise/platewise-backend/internal/domain"
)

func TestAggregateUnion(t *testing.T) {
	tenantID := uuid.New()
	flour := uuid.New()
	butter := uuid.New()
	shrimp := uuid.New()

	resolver := &fakeResolver{allergens: map[uuid.UUID][]string{
		flour:  {"Cereals containing gluten"},
		butter: {"Milk"},
		shrimp: {"Crustaceans", "Milk"},
	}}
	agg := NewAllergenAggregator(resolver, testLogger())

	lines := []types.RecipeIngredient{
		{IngredientID: flour, Quantity: 500, Unit: "g"},
		{IngredientID: butter, Quantity: 200, Unit: "g"},
		{IngredientID: shrimp, Quantity: 300, Unit: "g"},
	}
	got, unresolved, err := agg.Aggregate(context.Background(), nil, tenantID, lines)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if unresolved != 0 {
		t.Fatalf("unresolved=%d, want 0", unresolved)
	}
	want := []string{"Cereals containing gluten", "Crustaceans", "Milk"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Aggregate=%v, want %v", got, want)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	tenantID := uuid.New()
	a := uuid.New()
	b := uuid.New()
	resolver := &fakeResolver{allergens: map[uuid.UUID][]string{
		a: {"Milk"},
		b: {"Eggs"},
	}}
	agg := NewAllergenAggregator(resolver, testLogger())

	forward := []types.RecipeIngredient{
		{IngredientID: a, Quantity: 1, Unit: "kg"},
		{IngredientID: b, Quantity: 1, Unit: "kg"},
	}
	reversed := []types.RecipeIngredient{
		{IngredientID: b, Quantity: 1, Unit: "kg"},
		{IngredientID: a, Quantity: 1, Unit: "kg"},
	}

	got1, _, err := agg.Aggregate(context.Background(), nil, tenantID, forward)
	if err != nil {
		t.Fatalf("Aggregate forward: %v", err)
	}
	got2, _, err := agg.Aggregate(context.Background(), nil, tenantID, reversed)
	if err != nil {
		t.Fatalf("Aggregate reversed: %v", err)
	}
	if !reflect.DeepEqual(got1, got2) {
		t.Fatalf("line order changed the result: %v vs %v", got1, got2)
	}
}

func TestAggregateEmptyLines(t *testing.T) {
	agg := NewAllergenAggregator(&fakeResolver{}, testLogger())
	got, unresolved, err := agg.Aggregate(context.Background(), nil, uuid.New(), nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(got) != 0 || unresolved != 0 {
		t.Fatalf("got %v (unresolved=%d), want empty", got, unresolved)
	}
}

func TestAggregateSkipsUnresolvableLines(t *testing.T) {
	tenantID := uuid.New()
	known := uuid.New()
	resolver := &fakeResolver{allergens: map[uuid.UUID][]string{
		known: {"Peanuts"},
	}}
	agg := NewAllergenAggregator(resolver, testLogger())

	lines := []types.RecipeIngredient{
		{IngredientID: known, Quantity: 1, Unit: "kg"},
		{IngredientID: uuid.New(), Quantity: 1, Unit: "kg"},
	}
	got, unresolved, err := agg.Aggregate(context.Background(), nil, tenantID, lines)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if unresolved != 1 {
		t.Fatalf("unresolved=%d, want 1", unresolved)
	}
	want := []string{"Peanuts"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Aggregate=%v, want %v", got, want)
	}
}
