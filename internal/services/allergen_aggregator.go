package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

// IngredientResolver yields the allergen labels of a single ingredient.
type IngredientResolver interface {
	ResolveAllergens(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID) ([]string, error)
}

// AllergenAggregator derives a recipe's allergen set from its ingredient
// lines. Lookups that fail resolve to no labels rather than failing the
// caller; the second return value reports how many lines were skipped.
type AllergenAggregator interface {
	Aggregate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, lines []types.RecipeIngredient) ([]string, int, error)
}

type repoIngredientResolver struct {
	ingredients repos.IngredientRepo
}

func NewIngredientResolver(ingredients repos.IngredientRepo) IngredientResolver {
	return &repoIngredientResolver{ingredients: ingredients}
}

func (r *repoIngredientResolver) ResolveAllergens(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID) ([]string, error) {
	ing, err := r.ingredients.GetByID(ctx, tx, tenantID, ingredientID)
	if err != nil {
		return nil, err
	}
	return []string(ing.Allergens), nil
}

type allergenAggregator struct {
	resolver IngredientResolver
	log      *logger.Logger
}

func NewAllergenAggregator(resolver IngredientResolver, baseLog *logger.Logger) AllergenAggregator {
	return &allergenAggregator{
		resolver: resolver,
		log:      baseLog.With("service", "allergen_aggregator"),
	}
}

func (a *allergenAggregator) Aggregate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, lines []types.RecipeIngredient) ([]string, int, error) {
	if len(lines) == 0 {
		return []string{}, 0, nil
	}

	var (
		mu         sync.Mutex
		set        = make(map[string]struct{})
		unresolved int
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, line := range lines {
		line := line
		g.Go(func() error {
			labels, err := a.resolver.ResolveAllergens(gctx, tx, tenantID, line.IngredientID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				a.log.Warn("skipping ingredient during allergen aggregation",
					"ingredient_id", line.IngredientID,
					"error", err)
				mu.Lock()
				unresolved++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			for _, l := range labels {
				set[l] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out, unresolved, nil
}
