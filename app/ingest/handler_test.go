package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nutriswap/nutriswap/openfoodfacts"
)

// blockingSource parks the batch inside its first upstream call until
// released, so the test can observe an in-flight run.
type blockingSource struct {
	release chan struct{}
}

func (b *blockingSource) Categories(ctx context.Context) ([]openfoodfacts.CategoryTag, error) {
	<-b.release
	return nil, nil
}

func (b *blockingSource) SearchByCategory(ctx context.Context, categoryID string, pageSize int) ([]openfoodfacts.ProductPayload, error) {
	return nil, nil
}

func TestHandleRunIsSingleFlight(t *testing.T) {
	source := &blockingSource{release: make(chan struct{})}
	defer close(source.release)

	categories := &mockCategoryStore{}
	ingestor := NewIngestor(categories, newMockProductStore(), testLink)
	orchestrator := NewOrchestrator(source, categories, ingestor, zap.NewNop())
	handler := NewHandler(orchestrator, zap.NewNop())

	first := httptest.NewRecorder()
	handler.HandleRun(first, httptest.NewRequest(http.MethodPost, "/ingestion/run", nil))
	assert.Equal(t, http.StatusAccepted, first.Code)

	// The batch is parked in the upstream call; a second trigger is refused.
	second := httptest.NewRecorder()
	handler.HandleRun(second, httptest.NewRequest(http.MethodPost, "/ingestion/run", nil))
	assert.Equal(t, http.StatusConflict, second.Code)
}
