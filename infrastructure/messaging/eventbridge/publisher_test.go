package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kgraph/domain/events"
	pkgerrors "kgraph/pkg/errors"
)

type mockPutEvents struct {
	mock.Mock
}

func (m *mockPutEvents) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventbridge.PutEventsOutput), args.Error(1)
}

func deletedEvents(n int) []events.DomainEvent {
	out := make([]events.DomainEvent, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, events.NewRelationshipDeleted(0, time.Now()))
	}
	return out
}

func TestPublisher_Publish_BuildsEntry(t *testing.T) {
	ctx := context.Background()
	client := new(mockPutEvents)

	var captured *eventbridge.PutEventsInput
	client.On("PutEvents", ctx, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*eventbridge.PutEventsInput) }).
		Return(&eventbridge.PutEventsOutput{}, nil)

	event := events.NewEntityDeleted(5, time.Now())
	require.NoError(t, NewPublisher(client, "kgraph-bus", zap.NewNop()).Publish(ctx, event))

	require.Len(t, captured.Entries, 1)
	entry := captured.Entries[0]
	assert.Equal(t, "kgraph-bus", aws.ToString(entry.EventBusName))
	assert.Equal(t, events.SourceBackend, aws.ToString(entry.Source))
	assert.Equal(t, events.TypeEntityDeleted, aws.ToString(entry.DetailType))

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, "entity:5", detail["aggregate_id"])
	assert.NotEmpty(t, detail["event_id"])
}

func TestPublisher_PublishBatch_ChunksByTen(t *testing.T) {
	ctx := context.Background()
	client := new(mockPutEvents)

	var sizes []int
	client.On("PutEvents", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			sizes = append(sizes, len(args.Get(1).(*eventbridge.PutEventsInput).Entries))
		}).
		Return(&eventbridge.PutEventsOutput{}, nil)

	require.NoError(t, NewPublisher(client, "bus", zap.NewNop()).PublishBatch(ctx, deletedEvents(23)))
	assert.Equal(t, []int{10, 10, 3}, sizes)
}

func TestPublisher_PublishBatch_ReportsFailures(t *testing.T) {
	ctx := context.Background()
	client := new(mockPutEvents)
	client.On("PutEvents", ctx, mock.Anything).Return(&eventbridge.PutEventsOutput{
		FailedEntryCount: 1,
		Entries: []types.PutEventsResultEntry{
			{ErrorCode: aws.String("ThrottlingException"), ErrorMessage: aws.String("slow down")},
		},
	}, nil)

	err := NewPublisher(client, "bus", zap.NewNop()).PublishBatch(ctx, deletedEvents(1))
	assert.EqualError(t, err, "1 events failed to publish")
}

func TestPublisher_PublishBatch_ClientError(t *testing.T) {
	ctx := context.Background()
	client := new(mockPutEvents)
	client.On("PutEvents", ctx, mock.Anything).Return(nil, errors.New("no credentials"))

	err := NewPublisher(client, "bus", zap.NewNop()).PublishBatch(ctx, deletedEvents(2))
	assert.ErrorContains(t, err, "no credentials")
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeExternal))
}

func TestPublisher_PublishBatch_EmptyIsNoop(t *testing.T) {
	client := new(mockPutEvents)
	require.NoError(t, NewPublisher(client, "bus", zap.NewNop()).PublishBatch(context.Background(), nil))
	client.AssertNotCalled(t, "PutEvents", mock.Anything, mock.Anything)
}
