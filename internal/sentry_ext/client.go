// Package sentry_ext sends captured errors to Sentry with deduplication.
package sentry_ext

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

type Params struct {
	// DSN is the Sentry project DSN. Empty disables uploads.
	DSN string
	// Disabled turns the client into a no-op even when a DSN is set.
	Disabled bool
	// AttachStacktrace attaches a stack trace to message events.
	AttachStacktrace bool
	// Release is the application version.
	Release string
	// Environment is the deployment environment name.
	Environment string
	// LRUSize bounds the number of distinct messages remembered for dedup.
	LRUSize int
	// Transport overrides the Sentry transport. Used in tests.
	Transport sentry.Transport
}

// Client forwards errors and messages to a Sentry hub.
//
// A nil *Client is valid and drops everything.
type Client struct {
	hub    *sentry.Hub
	recent *cache
}

// New initializes a Sentry client.
//
// Returns nil if reporting is disabled or the client can't be created;
// callers treat a nil client as disabled.
func New(params Params) *Client {
	if params.Disabled {
		return nil
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              params.DSN,
		AttachStacktrace: params.AttachStacktrace,
		Release:          params.Release,
		Environment:      params.Environment,
		Transport:        params.Transport,
	})
	if err != nil {
		slog.Error("sentry_ext: New: failed to create client", "error", err)
		return nil
	}

	recent, err := newCache(params.LRUSize)
	if err != nil {
		slog.Error("sentry_ext: New: failed to create cache", "error", err)
		return nil
	}

	return &Client{
		hub:    sentry.NewHub(client, sentry.NewScope()),
		recent: recent,
	}
}

// CaptureException sends an error-level event tagged with tags.
func (c *Client) CaptureException(err error, tags map[string]string) {
	if c == nil || err == nil || !c.recent.shouldCapture(err.Error()) {
		return
	}

	c.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		c.hub.CaptureException(err)
	})
}

// CaptureMessage sends an info-level event tagged with tags.
func (c *Client) CaptureMessage(msg string, tags map[string]string) {
	if c == nil || !c.recent.shouldCapture(msg) {
		return
	}

	c.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		c.hub.CaptureMessage(msg)
	})
}

// Flush waits up to timeout for buffered events to be sent.
func (c *Client) Flush(timeout time.Duration) bool {
	if c == nil {
		return true
	}
	return c.hub.Flush(timeout)
}
