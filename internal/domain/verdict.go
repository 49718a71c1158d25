package domain

// Verdict is the result of a pure business-rule check: either a pass, or a
// fail carrying a human-readable reason. Verdicts are never persisted; a
// failing reason is copied into a FAILED TransactionRecord by the ledger.
type Verdict struct {
	failed bool
	reason string
}

func Pass() Verdict {
	return Verdict{}
}

func Fail(reason string) Verdict {
	return Verdict{failed: true, reason: reason}
}

func (v Verdict) OK() bool {
	return !v.failed
}

func (v Verdict) Reason() string {
	return v.reason
}
