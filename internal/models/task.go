package models

const (
	CompletionStatusDone    = "DONE"
	CompletionStatusPending = "PENDING"
)

// Task is the storage-facing record. Header is stored in the
// "title" column; the wire shape exposes it as "title" as well.
type Task struct {
	ID          int64
	Header      string
	Description string
	Completed   bool
}
