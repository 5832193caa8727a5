package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nutriswap/nutriswap/models"
	"github.com/nutriswap/nutriswap/openfoodfacts"
)

// --- Mock source ---

type mockSource struct {
	tags          []openfoodfacts.CategoryTag
	tagsErr       error
	searches      map[string][]openfoodfacts.ProductPayload
	searchErr     error
	searchedTags  []string
	searchedSizes []int
}

func (m *mockSource) Categories(ctx context.Context) ([]openfoodfacts.CategoryTag, error) {
	if m.tagsErr != nil {
		return nil, m.tagsErr
	}
	return m.tags, nil
}

func (m *mockSource) SearchByCategory(ctx context.Context, categoryID string, pageSize int) ([]openfoodfacts.ProductPayload, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	m.searchedTags = append(m.searchedTags, categoryID)
	m.searchedSizes = append(m.searchedSizes, pageSize)
	return m.searches[categoryID], nil
}

func tagFixture(name, id string) openfoodfacts.CategoryTag {
	return openfoodfacts.CategoryTag{
		Name:     name,
		URL:      "https://food.example/categorie/" + id,
		Products: 10,
		ID:       id,
	}
}

func newTestOrchestrator(source *mockSource, categories *mockCategoryStore) *Orchestrator {
	products := newMockProductStore()
	ingestor := NewIngestor(categories, products, testLink)
	return NewOrchestrator(source, categories, ingestor, zap.NewNop())
}

// --- Tests ---

func TestRunKeepsOnlyFirstThreeTags(t *testing.T) {
	source := &mockSource{
		tags: []openfoodfacts.CategoryTag{
			tagFixture("pains", "fr:pains"),
			tagFixture("beurres", "fr:beurres"),
			tagFixture("fromages", "fr:fromages"),
			tagFixture("yaourts", "fr:yaourts"),
			tagFixture("biscuits", "fr:biscuits"),
		},
		searches: map[string][]openfoodfacts.ProductPayload{},
	}
	categories := &mockCategoryStore{}

	stats, err := newTestOrchestrator(source, categories).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.CategoriesCreated)
	assert.Len(t, categories.categories, 3)
	assert.Equal(t, []string{"fr:pains", "fr:beurres", "fr:fromages"}, source.searchedTags)
}

func TestRunFetchesPreExistingCategoriesToo(t *testing.T) {
	source := &mockSource{
		tags:     []openfoodfacts.CategoryTag{tagFixture("pains", "fr:pains")},
		searches: map[string][]openfoodfacts.ProductPayload{},
	}
	categories := &mockCategoryStore{}
	require.NoError(t, categories.Create(&models.Category{Name: "Beurres", SourceID: "fr:beurres"}))

	_, err := newTestOrchestrator(source, categories).Run(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"fr:beurres", "fr:pains"}, source.searchedTags)
	for _, size := range source.searchedSizes {
		assert.Equal(t, 1000, size)
	}
}

func TestRunCountsSkipsAndProducts(t *testing.T) {
	source := &mockSource{
		tags: []openfoodfacts.CategoryTag{tagFixture("pains", "fr:pains")},
		searches: map[string][]openfoodfacts.ProductPayload{
			"fr:pains": {
				fullPayload(),
				{Code: strPtr("9"), ProductName: strPtr("Y"), Brands: strPtr("Z")}, // no ingredients_text
			},
		},
	}
	categories := &mockCategoryStore{}

	stats, err := newTestOrchestrator(source, categories).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ProductsCreated)
	assert.Equal(t, 2, stats.LinksCreated)
	assert.Equal(t, 1, stats.Skipped[SkipMissingField])
}

func TestRunRepeatedIsIdempotentForCategories(t *testing.T) {
	source := &mockSource{
		tags:     []openfoodfacts.CategoryTag{tagFixture("pains", "fr:pains")},
		searches: map[string][]openfoodfacts.ProductPayload{},
	}
	categories := &mockCategoryStore{}
	orchestrator := newTestOrchestrator(source, categories)

	_, err := orchestrator.Run(context.Background())
	require.NoError(t, err)
	stats, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.CategoriesCreated)
	assert.Equal(t, 1, stats.Skipped[SkipDuplicate])
	assert.Len(t, categories.categories, 1)
}

func TestRunAbortsOnUpstreamFailure(t *testing.T) {
	t.Run("Category listing fails", func(t *testing.T) {
		source := &mockSource{tagsErr: errors.New("connection refused")}
		_, err := newTestOrchestrator(source, &mockCategoryStore{}).Run(context.Background())
		assert.ErrorContains(t, err, "ingestion aborted")
	})

	t.Run("Product search fails", func(t *testing.T) {
		source := &mockSource{
			tags:      []openfoodfacts.CategoryTag{tagFixture("pains", "fr:pains")},
			searchErr: errors.New("gateway timeout"),
		}
		categories := &mockCategoryStore{}

		stats, err := newTestOrchestrator(source, categories).Run(context.Background())
		assert.ErrorContains(t, err, "ingestion aborted")
		assert.Equal(t, 1, stats.CategoriesCreated, "categories saved before the failure stay")
	})
}
