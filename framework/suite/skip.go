package suite

// SkipCondition determines, at registration time, whether a case should be
// registered as skipped instead of active. The zero value never skips.
//
// A condition is either a fixed boolean or a deferred predicate; the predicate
// is evaluated exactly once, when the registration happens, and must have no
// side effects beyond its boolean result.
type SkipCondition struct {
	always    bool
	predicate func() bool
	reason    string
}

// SkipAlways unconditionally skips the case.
func SkipAlways(reason string) SkipCondition {
	return SkipCondition{always: true, reason: reason}
}

// SkipIf skips the case when the condition is true.
func SkipIf(condition bool, reason string) SkipCondition {
	return SkipCondition{always: condition, reason: reason}
}

// SkipWhen skips the case when the predicate returns true. The predicate runs
// once at registration time.
func SkipWhen(predicate func() bool, reason string) SkipCondition {
	return SkipCondition{predicate: predicate, reason: reason}
}

func (s SkipCondition) evaluate() (bool, string) {
	if s.always {
		return true, s.reason
	}
	if s.predicate != nil && s.predicate() {
		return true, s.reason
	}
	return false, ""
}
