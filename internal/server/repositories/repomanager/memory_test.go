package repomanager

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryManager_WritesWaitForTx(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryRepositoryManager()

	task, err := m.Tasks().Create(ctx, &models.Task{OwnerID: "u1", Description: "a", Priority: models.PriorityMedium})
	require.NoError(t, err)

	done := make(chan struct{})
	err = m.WithTx(ctx, func(ctx context.Context, r Repositories) error {
		current, err := r.Tasks.GetForUpdate(ctx, "u1", task.ID)
		if err != nil {
			return err
		}

		go func() {
			defer close(done)
			_, _ = m.Tasks().SetCompleted(context.Background(), "u1", task.ID, true)
		}()

		select {
		case <-done:
			t.Error("SetCompleted ran inside the transaction")
		case <-time.After(50 * time.Millisecond):
		}

		current.Description = "b"
		_, err = r.Tasks.Replace(ctx, current)
		return err
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SetCompleted never ran")
	}

	list, err := m.Tasks().ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Description)
	assert.True(t, list[0].Completed, "completion set after the update must survive")
}

func TestInMemoryManager_DeleteWaitsForTx(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryRepositoryManager()

	task, err := m.Tasks().Create(ctx, &models.Task{OwnerID: "u1", Description: "a", Priority: models.PriorityLow})
	require.NoError(t, err)

	done := make(chan error, 1)
	err = m.WithTx(ctx, func(ctx context.Context, r Repositories) error {
		go func() { done <- m.Tasks().Delete(context.Background(), "u1", task.ID) }()

		select {
		case <-done:
			t.Error("Delete ran inside the transaction")
		case <-time.After(50 * time.Millisecond):
		}
		_, err := r.Tasks.GetForUpdate(ctx, "u1", task.ID)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, <-done)

	list, err := m.Tasks().ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
