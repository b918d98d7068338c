// Package mail composes and delivers the planner's email messages: the
// subscription verification email and the pending-task reminder.
package mail

import "context"

// Sender delivers a single HTML email message. It is the boundary to
// the external mail transport.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
