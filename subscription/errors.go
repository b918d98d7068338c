package subscription

import "errors"

var (
	// ErrAlreadySubscribed is returned when requesting a subscription
	// for an email that is already confirmed.
	ErrAlreadySubscribed = errors.New("email is already subscribed")

	// ErrNotPending is returned when verifying an email with no pending
	// subscription.
	ErrNotPending = errors.New("no pending subscription for email")

	// ErrInvalidCode is returned when the verification code does not
	// match the pending entry.
	ErrInvalidCode = errors.New("verification code does not match")

	// ErrNotSubscribed is returned when unsubscribing an email that is
	// not in the subscriber set.
	ErrNotSubscribed = errors.New("email is not subscribed")
)
