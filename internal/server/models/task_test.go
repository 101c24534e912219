package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriority_Valid(t *testing.T) {
	assert.True(t, PriorityHigh.Valid())
	assert.True(t, PriorityMedium.Valid())
	assert.True(t, PriorityLow.Valid())
	assert.False(t, Priority("").Valid())
	assert.False(t, Priority("medium").Valid())
	assert.Equal(t, PriorityMedium, DefaultPriority)
}

func TestTaskPatch_Apply(t *testing.T) {
	task := Task{Description: "Buy milk", DueDate: "2025-01-01", DueTime: "10:00", Priority: PriorityMedium}

	desc := "Buy oat milk"
	prio := PriorityHigh
	done := true
	patch := TaskPatch{Description: &desc, Priority: &prio, Completed: &done}

	assert.False(t, patch.Empty())
	patch.Apply(&task)

	assert.Equal(t, Task{
		Description: "Buy oat milk",
		DueDate:     "2025-01-01",
		DueTime:     "10:00",
		Priority:    PriorityHigh,
		Completed:   true,
	}, task)
}

func TestTaskPatch_Empty(t *testing.T) {
	assert.True(t, TaskPatch{}.Empty())
}
