package mapper

import (
	"github.com/taskmanager/task-api/internal/dto"
	"github.com/taskmanager/task-api/internal/models"
)

// ToResponse converts a stored task to its wire shape. The storage
// header becomes the wire title and completionStatus is derived from
// the completed flag.
func ToResponse(task models.Task) dto.TaskResponse {
	completionStatus := models.CompletionStatusPending
	if task.Completed {
		completionStatus = models.CompletionStatusDone
	}

	return dto.TaskResponse{
		ID:               task.ID,
		Title:            task.Header,
		Description:      task.Description,
		Completed:        task.Completed,
		CompletionStatus: completionStatus,
	}
}

// ToEntity converts a wire request to a storage task. The id is left
// zero so the repository assigns it on insert.
func ToEntity(req dto.TaskRequest) models.Task {
	task := models.Task{
		Header:      req.Title,
		Description: req.Description,
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	return task
}
