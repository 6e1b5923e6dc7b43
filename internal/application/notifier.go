package application

import "context"

// JobPublisher enqueues background jobs such as emails.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
