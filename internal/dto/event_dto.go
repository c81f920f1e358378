package dto

import "github.com/google/uuid"

// PublishThreadViewedMessage is the payload pushed onto the in-process
// event bus every time a thread detail page is served. The consumer
// folds these into the views counter off the request path.
type PublishThreadViewedMessage struct {
	ThreadId uuid.UUID `json:"thread_id"`
}
