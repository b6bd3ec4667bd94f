// Package notifications sends ntfy push notifications for run and batch
// milestones. A no-op implementation is used when no topic is configured.
package notifications
