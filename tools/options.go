package tools

import (
	"log/slog"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Job Dispatcher base URL, e.g. to use a mirror.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithEmail sets the contact address attached to every submission. The EBI
// terms of use ask for a reachable address so operators can report problem
// jobs.
func WithEmail(email string) Option {
	return func(c *Client) { c.email = email }
}

// WithPollInterval sets how long to wait between status checks.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) { c.pollInterval = interval }
}

// WithPollDeadline bounds the total time Submit waits for a job to leave
// the RUNNING state. Zero (the default) means wait forever.
func WithPollDeadline(deadline time.Duration) Option {
	return func(c *Client) { c.pollDeadline = deadline }
}

// WithLockStore replaces the default file-backed lock store.
func WithLockStore(store LockStore) Option {
	return func(c *Client) { c.locks = store }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}
