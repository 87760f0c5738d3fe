package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskmanager/task-api/internal/dto"
	"github.com/taskmanager/task-api/internal/models"
)

func TestToResponse_CompletionStatus(t *testing.T) {
	pending := ToResponse(models.Task{ID: 1, Header: "Buy groceries", Completed: false})
	assert.Equal(t, "PENDING", pending.CompletionStatus)

	done := ToResponse(models.Task{ID: 2, Header: "Buy groceries", Completed: true})
	assert.Equal(t, "DONE", done.CompletionStatus)
}

func TestToResponse_AliasesHeaderToTitle(t *testing.T) {
	response := ToResponse(models.Task{
		ID:          42,
		Header:      "Buy groceries",
		Description: "milk and eggs",
		Completed:   false,
	})

	assert.Equal(t, int64(42), response.ID)
	assert.Equal(t, "Buy groceries", response.Title)
	assert.Equal(t, "milk and eggs", response.Description)
	assert.False(t, response.Completed)
}

func TestToEntity_NeverPopulatesID(t *testing.T) {
	completed := true
	task := ToEntity(dto.TaskRequest{
		Title:     "Buy groceries",
		Completed: &completed,
	})

	assert.Zero(t, task.ID)
	assert.Equal(t, "Buy groceries", task.Header)
	assert.True(t, task.Completed)
}

func TestRoundTrip_PreservesRequestFields(t *testing.T) {
	for _, completed := range []bool{true, false} {
		req := dto.TaskRequest{
			Title:       "Water the plants",
			Description: "both pots",
			Completed:   &completed,
		}

		response := ToResponse(ToEntity(req))
		assert.Equal(t, req.Title, response.Title)
		assert.Equal(t, req.Description, response.Description)
		assert.Equal(t, completed, response.Completed)
	}
}
