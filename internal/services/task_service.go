package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/taskmanager/task-api/internal/dto"
	"github.com/taskmanager/task-api/internal/mapper"
	"github.com/taskmanager/task-api/internal/repository"
	"github.com/taskmanager/task-api/internal/sanitizer"
)

type taskServiceImpl struct {
	logger    zerolog.Logger
	tasks     repository.Tasks
	sanitizer sanitizer.Sanitizer
}

func NewTaskService(
	logger zerolog.Logger,
	tasks repository.Tasks,
	sanitizer sanitizer.Sanitizer,
) TaskService {
	return &taskServiceImpl{
		logger:    logger,
		tasks:     tasks,
		sanitizer: sanitizer,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = mapper.ToResponse(task)
	}

	s.logger.Info().
		Int("count", len(responses)).
		Msg("listed tasks")
	return responses, nil
}

func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id int64) (*dto.TaskResponse, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, NotFoundError{ID: id}
		}
		return nil, err
	}

	response := mapper.ToResponse(*task)
	s.logger.Info().
		Int64("task_id", id).
		Msg("task found")
	return &response, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, req dto.TaskRequest) (*dto.TaskResponse, error) {
	s.sanitizeRequest(&req)

	err := validateRequest(req)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("invalid create request")
		return nil, err
	}

	// The partial unique index backs this pre-check up; a concurrent
	// create losing the race still gets ErrDuplicateTask from Save.
	exists, err := s.tasks.ExistsActiveByTitle(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Warn().
			Str("title", req.Title).
			Msg("active task with this title already exists")
		return nil, ErrDuplicateTask
	}

	task := mapper.ToEntity(req)
	err = s.tasks.Save(ctx, &task)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return nil, ErrDuplicateTask
		}
		return nil, err
	}

	response := mapper.ToResponse(task)
	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("created task")
	return &response, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, req dto.TaskRequest) (*dto.TaskResponse, error) {
	s.sanitizeRequest(&req)

	err := validateRequest(req)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int64("task_id", id).
			Msg("invalid update request")
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, NotFoundError{ID: id}
		}
		return nil, err
	}

	task.Header = req.Title
	task.Description = req.Description
	task.Completed = *req.Completed

	err = s.tasks.Save(ctx, task)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			return nil, NotFoundError{ID: id}
		case errors.Is(err, repository.ErrDuplicateTitle):
			return nil, ErrDuplicateTask
		}
		return nil, err
	}

	response := mapper.ToResponse(*task)
	s.logger.Info().
		Int64("task_id", id).
		Msg("updated task")
	return &response, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	_, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return NotFoundError{ID: id}
		}
		return err
	}

	err = s.tasks.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return NotFoundError{ID: id}
		}
		return err
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) sanitizeRequest(req *dto.TaskRequest) {
	req.Title = s.sanitizer.Sanitize(req.Title)
	req.Description = s.sanitizer.Sanitize(req.Description)
}

// validateRequest re-checks the request constraints after
// sanitization. The binding layer already enforces them on the raw
// input, but stripping markup can shorten fields below their minimum,
// and the service must hold its own even when called directly.
func validateRequest(req dto.TaskRequest) error {
	fields := make(map[string]string)

	titleLen := utf8.RuneCountInString(req.Title)
	switch {
	case titleLen == 0:
		fields["title"] = dto.MsgTitleRequired
	case titleLen < dto.TitleMinLen || titleLen > dto.TitleMaxLen:
		fields["title"] = dto.MsgTitleSize
	}

	if utf8.RuneCountInString(req.Description) > dto.DescriptionMaxLen {
		fields["description"] = dto.MsgDescriptionSize
	}

	if req.Completed == nil {
		fields["completed"] = dto.MsgCompletedRequired
	}

	if len(fields) > 0 {
		return ValidationError{Fields: fields}
	}
	return nil
}
