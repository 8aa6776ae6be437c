package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kgraph/application/ports"
	"kgraph/application/ports/mocks"
	"kgraph/domain/core/entities"
	"kgraph/domain/core/valueobjects"
	pkgerrors "kgraph/pkg/errors"
)

func testConfig() BreakerConfig {
	cfg := DefaultBreakerConfig("test-store")
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	cfg.Timeout = time.Minute
	return cfg
}

func TestEntityRepository_OpensAfterStoreFailures(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockEntityRepository)
	inner.On("List", ctx, ports.EntityFilter{}).Return(nil, pkgerrors.NewDatabaseError("list entities", errors.New("connection refused")))

	repo := NewEntityRepository(inner, NewBreaker(testConfig(), zap.NewNop()))

	for i := 0; i < 2; i++ {
		_, err := repo.List(ctx, ports.EntityFilter{})
		require.Error(t, err)
		assert.False(t, pkgerrors.IsUnavailable(err))
	}

	_, err := repo.List(ctx, ports.EntityFilter{})
	assert.True(t, pkgerrors.IsUnavailable(err))
	assert.Equal(t, CodeCircuitOpen, pkgerrors.GetAppError(err).Code)
	inner.AssertNumberOfCalls(t, "List", 2)
}

func TestEntityRepository_NotFoundDoesNotTrip(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockEntityRepository)
	inner.On("GetByID", ctx, mock.Anything).Return(nil, pkgerrors.NewNotFoundError("entity"))

	repo := NewEntityRepository(inner, NewBreaker(testConfig(), zap.NewNop()))

	for i := 0; i < 5; i++ {
		_, err := repo.GetByID(ctx, valueobjects.EntityID(i+1))
		assert.True(t, pkgerrors.IsNotFound(err))
	}
	inner.AssertNumberOfCalls(t, "GetByID", 5)
}

func TestRelationshipRepository_PassesResultsThrough(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockRelationshipRepository)
	rel := entities.ReconstructRelationship(1, 1, 2, valueobjects.RelationshipFounded, "", 1, time.Now())
	inner.On("List", ctx, ports.BySource(1)).Return([]*entities.Relationship{rel}, nil)
	inner.On("Delete", ctx, valueobjects.RelationshipID(1)).Return(nil)

	repo := NewRelationshipRepository(inner, NewBreaker(testConfig(), zap.NewNop()))

	rels, err := repo.List(ctx, ports.BySource(1))
	require.NoError(t, err)
	assert.Equal(t, []*entities.Relationship{rel}, rels)
	assert.NoError(t, repo.Delete(ctx, 1))
}

func TestGraphReader_TimeoutsTrip(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockGraphReader)
	inner.On("ReadGraph", ctx).Return(nil, pkgerrors.NewTimeoutError("list entities"))

	reader := NewGraphReader(inner, NewBreaker(testConfig(), zap.NewNop()))

	for i := 0; i < 2; i++ {
		_, err := reader.ReadGraph(ctx)
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeTimeout))
	}

	_, err := reader.ReadGraph(ctx)
	assert.True(t, pkgerrors.IsUnavailable(err))
	inner.AssertNumberOfCalls(t, "ReadGraph", 2)
}
