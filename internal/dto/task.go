package dto

// Validation messages reused by both the binding layer and the
// service's own re-validation.
const (
	MsgTitleRequired     = "Title is required"
	MsgTitleSize         = "Title must be between 3 and 100 characters"
	MsgDescriptionSize   = "Description cannot exceed 500 characters"
	MsgCompletedRequired = "Completion status must be specified"
)

const (
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// TaskRequest is what clients send on POST and PUT. It carries no id
// and no derived fields. Completed is a pointer so that an omitted
// field is distinguishable from an explicit false.
type TaskRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Completed   *bool  `json:"completed"`
}

// TaskResponse is what clients receive on every read. CompletionStatus
// is computed by the server and never persisted.
type TaskResponse struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Completed        bool   `json:"completed"`
	CompletionStatus string `json:"completionStatus"`
}
