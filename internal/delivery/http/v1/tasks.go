package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/taskmanager/task-api/internal/dto"
)

const (
	invalidTaskIDMessage      = "Invalid task id"
	invalidRequestBodyMessage = "Invalid request body"
)

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	logger := h.requestLogger(c)

	tasks, err := h.tasks.ListTasks(c)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abortWithError(c, err)
		return
	}

	logger.Info().
		Int("count", len(tasks)).
		Msg("fetched tasks")
	c.JSON(http.StatusOK, tasks)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	logger := h.requestLogger(c)

	id, ok := taskIDFromPath(c)
	if !ok {
		logger.Warn().
			Str("id", c.Param("id")).
			Msg("invalid task id")
		return
	}

	task, err := h.tasks.GetTaskByID(c, id)
	if err != nil {
		logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to get task")
		abortWithError(c, err)
		return
	}

	logger.Info().
		Int64("task_id", id).
		Msg("fetched task")
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	req, ok := bindTaskRequest(c, logger)
	if !ok {
		return
	}

	task, err := h.tasks.CreateTask(c, req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to create task")
		abortWithError(c, err)
		return
	}

	logger.Info().
		Int64("task_id", task.ID).
		Msg("created task")
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	id, ok := taskIDFromPath(c)
	if !ok {
		logger.Warn().
			Str("id", c.Param("id")).
			Msg("invalid task id")
		return
	}

	req, ok := bindTaskRequest(c, logger)
	if !ok {
		return
	}

	task, err := h.tasks.UpdateTask(c, id, req)
	if err != nil {
		logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task")
		abortWithError(c, err)
		return
	}

	logger.Info().
		Int64("task_id", id).
		Msg("updated task")
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	logger := h.requestLogger(c)

	id, ok := taskIDFromPath(c)
	if !ok {
		logger.Warn().
			Str("id", c.Param("id")).
			Msg("invalid task id")
		return
	}

	err := h.tasks.DeleteTask(c, id)
	if err != nil {
		logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		abortWithError(c, err)
		return
	}

	logger.Info().
		Int64("task_id", id).
		Msg("deleted task")
	c.Status(http.StatusNoContent)
}

// taskIDFromPath parses the id path parameter, aborting with a 400
// body when it is not a number.
func taskIDFromPath(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortBadRequest(c, invalidTaskIDMessage)
		return 0, false
	}
	return id, true
}

// bindTaskRequest decodes and validates the request body. Validator
// failures and a missing completed flag become a 400 with the field
// error map; anything else (malformed JSON) a plain 400.
func bindTaskRequest(c *gin.Context, logger zerolog.Logger) (dto.TaskRequest, bool) {
	var req dto.TaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			logger.Warn().
				Err(err).
				Msg("failed to bind json")
			abortBadRequest(c, invalidRequestBodyMessage)
			return req, false
		}

		fields := validationMessages(verrs)
		if req.Completed == nil {
			fields["completed"] = dto.MsgCompletedRequired
		}
		logger.Warn().
			Err(err).
			Msg("request validation failed")
		abortValidation(c, fields)
		return req, false
	}

	if req.Completed == nil {
		logger.Warn().Msg("completed field missing")
		abortValidation(c, map[string]string{
			"completed": dto.MsgCompletedRequired,
		})
		return req, false
	}

	return req, true
}
