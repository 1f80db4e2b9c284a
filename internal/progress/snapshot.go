package progress

import "math"

// Tolerance is the progress difference (0.01 %) under which two snapshots
// with identical messages are considered equivalent.
const Tolerance = 0.0001

// Snapshot is an immutable view of a committed progress change.
// Messages are ordered from least specific (outermost scope) to most specific;
// receivers must not modify the slice.
type Snapshot struct {
	Progress float64
	Messages []string
}

// Equivalent reports whether s and o differ by at most Tolerance in progress
// and carry element-wise identical messages. NaN is never equivalent to
// anything.
func (s Snapshot) Equivalent(o Snapshot) bool {
	if !(math.Abs(s.Progress-o.Progress) <= Tolerance) {
		return false
	}
	if len(s.Messages) != len(o.Messages) {
		return false
	}
	// Message lists tend to differ at the most specific end.
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i] != o.Messages[i] {
			return false
		}
	}
	return true
}

// withPrefix returns a new message list with label in front of msgs.
func withPrefix(label string, msgs []string) []string {
	out := make([]string, 0, len(msgs)+1)
	out = append(out, label)
	return append(out, msgs...)
}
