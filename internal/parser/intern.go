package parser

import "strings"

// MaxInternPoolSize limits the label pool. Past it, labels are kept as read.
const MaxInternPoolSize = 10000

// labelIntern deduplicates machine ids and state labels within one parse.
// Pooled labels never alias the CSV reader's line buffer.
type labelIntern struct {
	pool map[string]string
}

func newLabelIntern() *labelIntern {
	return &labelIntern{pool: make(map[string]string, 64)}
}

// Intern returns the canonical copy of s.
func (li *labelIntern) Intern(s string) string {
	if pooled, ok := li.pool[s]; ok {
		return pooled
	}
	if len(li.pool) >= MaxInternPoolSize {
		return s
	}
	s = strings.Clone(s)
	li.pool[s] = s
	return s
}

// Len returns the number of unique labels in the pool.
func (li *labelIntern) Len() int {
	return len(li.pool)
}
