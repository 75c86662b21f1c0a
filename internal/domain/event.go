package domain

import "time"

type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindVideo   ContentKind = "video"
	KindEpaper  ContentKind = "epaper"
)

type ContentAction string

const (
	ActionCreate ContentAction = "create"
	ActionUpdate ContentAction = "update"
	ActionDelete ContentAction = "delete"
)

// ContentEvent announces a committed change to a content record. Record is
// omitted for deletes.
type ContentEvent struct {
	Action    ContentAction `json:"action"`
	Kind      ContentKind   `json:"kind"`
	ID        int64         `json:"id"`
	Record    any           `json:"record,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
