package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Handle(ctx context.Context, cmd commands.ReconcilePartnerAvailabilityCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestPartnerAvailabilityReconcileJob_Run(t *testing.T) {
	t.Run("returns repaired count", func(t *testing.T) {
		reconciler := new(MockReconciler)
		reconciler.On("Handle", mock.Anything, mock.Anything).Return(2, nil).Once()
		job := jobs.NewPartnerAvailabilityReconcileJob(reconciler, "", slog.Default())

		assert.Equal(t, 2, job.Run(t.Context()))
		reconciler.AssertExpectations(t)
	})

	t.Run("swallows handler errors", func(t *testing.T) {
		reconciler := new(MockReconciler)
		reconciler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()
		job := jobs.NewPartnerAvailabilityReconcileJob(reconciler, "", slog.Default())

		assert.Zero(t, job.Run(t.Context()))
	})
}

func TestPartnerAvailabilityReconcileJob_Schedule(t *testing.T) {
	t.Run("invalid schedule fails to start", func(t *testing.T) {
		job := jobs.NewPartnerAvailabilityReconcileJob(new(MockReconciler), "every now and then", slog.Default())

		require.Error(t, job.Start())
	})

	t.Run("runs on every tick", func(t *testing.T) {
		ticked := make(chan struct{}, 8)
		reconciler := new(MockReconciler)
		reconciler.On("Handle", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { ticked <- struct{}{} }).
			Return(0, nil)

		manager := jobs.NewJobManager(reconciler, "* * * * * *", slog.Default())
		require.NoError(t, manager.StartAll())
		defer manager.StopAll()

		select {
		case <-ticked:
		case <-time.After(3 * time.Second):
			t.Fatal("reconcile job did not run")
		}
	})
}
