package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(owner, desc string) *models.Task {
	return &models.Task{
		OwnerID: owner, Description: desc, DueDate: "2025-01-01", DueTime: "10:00",
		Priority: models.PriorityMedium,
	}
}

func TestMemoryRepository_CRUD(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newTask("u1", "Buy milk"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	list, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	list[0].Description = "mutated copy"
	again, err := repo.GetForUpdate(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", again.Description, "store must hand out copies")

	done, err := repo.SetCompleted(ctx, "u1", created.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	again.Description = "Buy bread"
	again.Priority = models.PriorityLow
	replaced, err := repo.Replace(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, "Buy bread", replaced.Description)
	assert.Equal(t, models.PriorityLow, replaced.Priority)

	require.NoError(t, repo.Delete(ctx, "u1", created.ID))
	// повторное удаление должно вернуть NotFound
	require.ErrorIs(t, repo.Delete(ctx, "u1", created.ID), common.ErrorNotFound)

	list, err = repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryRepository_OwnerScoping(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	mine, err := repo.Create(ctx, newTask("u1", "mine"))
	require.NoError(t, err)

	// чужая задача выглядит как несуществующая
	_, err = repo.GetForUpdate(ctx, "u2", mine.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.SetCompleted(ctx, "u2", mine.ID, true)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "u2", mine.ID), common.ErrorNotFound)

	// empty owner means unscoped access
	_, err = repo.SetCompleted(ctx, "", mine.ID, true)
	require.NoError(t, err)
}

func TestMemoryRepository_ListByOwnerNeverLeaks(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	owners := []string{"u1", "u2", "u3", "u4"}
	want := map[string][]string{}
	for i := 0; i < 200; i++ {
		owner := owners[rng.Intn(len(owners))]
		task, err := repo.Create(ctx, newTask(owner, fmt.Sprintf("task-%d", i)))
		require.NoError(t, err)
		want[owner] = append(want[owner], task.ID)

		if i%7 == 0 {
			victim := want[owner][0]
			require.NoError(t, repo.Delete(ctx, owner, victim))
			want[owner] = want[owner][1:]
		}
	}

	for _, owner := range owners {
		got, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)

		ids := make([]string, 0, len(got))
		for _, task := range got {
			assert.Equal(t, owner, task.OwnerID)
			ids = append(ids, task.ID)
		}
		assert.Equal(t, len(want[owner]), len(ids))
		if len(want[owner]) > 0 {
			assert.Equal(t, want[owner], ids, "insertion order is preserved")
		}
	}
}
