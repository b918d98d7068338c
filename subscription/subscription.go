// Package subscription implements the double-opt-in reminder list:
// pending verification codes keyed by email, and the confirmed
// subscriber set.
//
// A subscription request stores a pending entry with a fresh
// verification code; verifying with the matching code moves the email
// into the subscriber set. Codes never expire, but a new request for the
// same email replaces the pending entry.
package subscription

// Pending is an unverified subscription awaiting code confirmation.
type Pending struct {
	// Code is the 6-digit zero-padded verification code.
	Code string `json:"code"`

	// Timestamp is when the code was issued, in Unix seconds.
	Timestamp int64 `json:"timestamp"`
}

// Repository provides access to the subscriber set and pending entries.
type Repository interface {
	// Request stores a pending subscription for email and returns the
	// verification code for the caller to deliver.
	Request(email string) (code string, err error)

	// Verify promotes email to the subscriber set when code matches its
	// pending entry.
	Verify(email, code string) error

	// Unsubscribe removes email from the subscriber set.
	Unsubscribe(email string) error

	// Subscribers returns all confirmed subscriber emails.
	Subscribers() []string
}
