package generation

import "errors"

var (
	// ErrGenerationFailed covers provider failures that fit no other bucket.
	ErrGenerationFailed = errors.New("study content generation failed")

	// ErrInvalidResponse means the model answered with JSON we could not
	// turn into examples or questions.
	ErrInvalidResponse = errors.New("model returned unusable study content")

	// ErrContentBlocked means the provider's safety filter refused the prompt.
	ErrContentBlocked = errors.New("model refused the prompt")

	// ErrTransientFailure means retrying later may succeed.
	ErrTransientFailure = errors.New("study content temporarily unavailable")

	// ErrInvalidConfig is returned by generator constructors.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// Retryable reports whether another attempt at the same prompt could
// produce a different outcome. Refusals and malformed answers are final.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrContentBlocked),
		errors.Is(err, ErrInvalidResponse),
		errors.Is(err, ErrInvalidConfig):
		return false
	}
	return true
}
