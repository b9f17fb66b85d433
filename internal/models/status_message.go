package models

type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
	StatusInfo    StatusKind = "info"
)

// StatusMessage is a transient notification shown to the user.
type StatusMessage struct {
	ID      string     `json:"id"`
	Type    StatusKind `json:"type"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}
