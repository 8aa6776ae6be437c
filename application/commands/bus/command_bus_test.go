package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type renameCommand struct {
	Name string
}

func (c renameCommand) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type commandMetrics struct {
	observed map[string]error
}

func (m *commandMetrics) ObserveCommand(name string, _ time.Duration, err error) {
	m.observed[name] = err
}

func TestCommandBus_SendReturnsHandlerResult(t *testing.T) {
	metrics := &commandMetrics{observed: map[string]error{}}
	b := NewCommandBus(LoggingMiddleware(zap.NewNop().Sugar()), MetricsMiddleware(metrics))

	require.NoError(t, b.Register(renameCommand{}, Typed(func(_ context.Context, c renameCommand) (string, error) {
		return "renamed to " + c.Name, nil
	})))

	result, err := b.Send(context.Background(), renameCommand{Name: "Ada"})

	require.NoError(t, err)
	assert.Equal(t, "renamed to Ada", result)
	assert.Contains(t, metrics.observed, "renameCommand")
}

func TestCommandBus_ValidationRunsBeforeHandler(t *testing.T) {
	called := false
	b := NewCommandBus()
	require.NoError(t, b.Register(renameCommand{}, Typed(func(context.Context, renameCommand) (interface{}, error) {
		called = true
		return nil, nil
	})))

	_, err := b.Send(context.Background(), renameCommand{})

	assert.ErrorContains(t, err, "command validation failed")
	assert.False(t, called)
}

func TestCommandBus_MissingHandler(t *testing.T) {
	_, err := NewCommandBus().Send(context.Background(), renameCommand{Name: "x"})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

func TestPipeline_FirstMiddlewareRunsOutermost(t *testing.T) {
	var order []string
	trace := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	handler := NewPipeline(trace("outer"), trace("inner")).Execute(CommandHandlerFunc(
		func(context.Context, Command) (interface{}, error) {
			order = append(order, "handler")
			return nil, nil
		},
	))

	_, err := handler.Handle(context.Background(), renameCommand{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
