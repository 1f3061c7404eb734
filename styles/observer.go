package styles

import "errors"

// Observer receives renderer events, it is used to collect metrics.
// Methods are called synchronously and must not block.
type Observer interface {
	RulesInserted(bucket Bucket, count int)
	CacheLookup(result LookupResult)
	DeclarationFailed(kind string)
}

// Failure kinds reported to Observer.
const (
	FailureMalformed   = "malformed"
	FailureAtRule      = "at-rule"
	FailureRejected    = "rejected"
	FailureUnspecified = "other"
)

// FailureKind classifies resolution error.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedAtRule):
		return FailureAtRule
	case errors.Is(err, ErrMalformedDeclaration):
		return FailureMalformed
	case errors.Is(err, ErrInsertRejected):
		return FailureRejected
	}
	return FailureUnspecified
}

type nopObserver struct{}

func (nopObserver) RulesInserted(Bucket, int) {}
func (nopObserver) CacheLookup(LookupResult) {}
func (nopObserver) DeclarationFailed(string) {}
