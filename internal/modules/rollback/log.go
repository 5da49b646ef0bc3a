// README: Bounded most-recent-first operation log.
package rollback

// opLog is a bounded stack of operation records. Pushing past capacity
// silently discards the oldest record, permanently forfeiting undo past
// that point.
type opLog struct {
	ops      []Operation
	capacity int
}

func newOpLog(capacity int) *opLog {
	return &opLog{capacity: capacity}
}

func (l *opLog) push(op Operation) {
	if len(l.ops) >= l.capacity {
		l.ops = l.ops[1:]
	}
	l.ops = append(l.ops, op)
}

// pop removes and returns the most recent record; ok is false when the log
// is empty.
func (l *opLog) pop() (Operation, bool) {
	if len(l.ops) == 0 {
		return Operation{}, false
	}
	op := l.ops[len(l.ops)-1]
	l.ops = l.ops[:len(l.ops)-1]
	return op, true
}

func (l *opLog) peek() (Operation, bool) {
	if len(l.ops) == 0 {
		return Operation{}, false
	}
	return l.ops[len(l.ops)-1], true
}

func (l *opLog) len() int { return len(l.ops) }

// recent returns up to n records, most recent first.
func (l *opLog) recent(n int) []Operation {
	if n > len(l.ops) {
		n = len(l.ops)
	}
	out := make([]Operation, 0, n)
	for i := len(l.ops) - 1; i >= len(l.ops)-n; i-- {
		out = append(out, l.ops[i])
	}
	return out
}
