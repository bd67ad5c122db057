package scoring

import "errors"

// ErrAttemptLimitExceeded is returned when a user has no attempts left for a test.
var ErrAttemptLimitExceeded = errors.New("attempt limit exceeded for this test")

// Authorize decides whether a new attempt may proceed. A nil maxAttempts means
// the test allows unlimited attempts. The caller is expected to obtain
// priorAttempts from a source-of-truth count immediately before calling; two
// concurrent submissions can still both pass the check, which matches the
// best-effort enforcement this policy provides.
func Authorize(priorAttempts int, maxAttempts *int) error {
	if maxAttempts == nil {
		return nil
	}
	if priorAttempts >= *maxAttempts {
		return ErrAttemptLimitExceeded
	}
	return nil
}
