package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"storehouse/internal/core/application/usecases/commands"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockReceiveOrdersHandler struct{ mock.Mock }

func (m *MockReceiveOrdersHandler) Handle(
	ctx context.Context,
	cmd commands.ReceiveOrdersCommand,
) ([]ports.IntakeMessage, error) {
	args := m.Called(ctx, cmd)
	batch, _ := args.Get(0).([]ports.IntakeMessage)
	return batch, args.Error(1)
}

type MockBatchRecorder struct{ mock.Mock }

func (m *MockBatchRecorder) RecordIntakeBatch(ctx context.Context, messages int) {
	m.Called(ctx, messages)
}

func TestIntakeReceiverJob_Run(t *testing.T) {
	batch := []ports.IntakeMessage{
		{OrderID: kernel.NewUUID(), CustomerID: 7, Quantity: 10, Priority: ports.PriorityHigh},
		{OrderID: kernel.NewUUID(), CustomerID: 5000, Quantity: 15, Priority: ports.PriorityLow},
	}

	tests := []struct {
		name      string
		batch     []ports.IntakeMessage
		err       error
		recorded  int
		wantInLog string
	}{
		{name: "admitted batch is recorded", batch: batch, recorded: 2, wantInLog: "Intake batch admitted"},
		{name: "empty channel is silent", batch: []ports.IntakeMessage{}},
		{name: "handler failure is logged", err: errors.New("browse intake: connection refused"), wantInLog: "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := new(MockReceiveOrdersHandler)
			handler.On("Handle", mock.Anything, mock.Anything).Return(tt.batch, tt.err).Once()
			recorder := new(MockBatchRecorder)
			if tt.recorded > 0 {
				recorder.On("RecordIntakeBatch", mock.Anything, tt.recorded).Once()
			}

			var logs bytes.Buffer
			j := NewIntakeReceiverJob(handler, recorder, DefaultIntakeSchedule, slog.New(slog.NewTextHandler(&logs, nil)))

			j.run(context.Background())

			handler.AssertExpectations(t)
			recorder.AssertExpectations(t)
			if tt.wantInLog == "" {
				assert.Zero(t, logs.Len())
				return
			}
			assert.Contains(t, logs.String(), tt.wantInLog)
			assert.Contains(t, logs.String(), "component=intake_receiver_job")
		})
	}
}

func TestIntakeReceiverJob_RunsOnSchedule(t *testing.T) {
	ticks := make(chan struct{}, 1)
	handler := new(MockReceiveOrdersHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case ticks <- struct{}{}:
			default:
			}
		}).
		Return([]ports.IntakeMessage{}, nil)

	j := NewIntakeReceiverJob(handler, new(MockBatchRecorder), "* * * * * *", slog.New(slog.DiscardHandler))
	require.NoError(t, j.Start())

	select {
	case <-ticks:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run within 3s")
	}

	j.Stop()
}

func TestJobManager_InvalidSchedule(t *testing.T) {
	jm := NewJobManager(new(MockReceiveOrdersHandler), new(MockBatchRecorder), "every now and then", slog.New(slog.DiscardHandler))

	err := jm.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start intake receiver job")
}

func TestJobManager_StartStop(t *testing.T) {
	handler := new(MockReceiveOrdersHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return([]ports.IntakeMessage{}, nil).Maybe()

	jm := NewJobManager(handler, new(MockBatchRecorder), DefaultIntakeSchedule, slog.New(slog.DiscardHandler))

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
