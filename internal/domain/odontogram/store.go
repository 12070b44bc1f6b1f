package odontogram

// ConditionStore is the in-memory condition collection for one open chart
// session. It preserves insertion order, oldest first, both per tooth and
// across the whole odontogram; the report ledger reads it verbatim. The store
// is owned by a single session and is not safe for concurrent use.
type ConditionStore struct {
	byTooth map[int][]*ToothCondition
	all     []*ToothCondition
}

func NewConditionStore() *ConditionStore {
	return &ConditionStore{byTooth: make(map[int][]*ToothCondition)}
}

// NewConditionStoreFrom builds a store pre-loaded with conditions in the
// given order, typically as read back from the repository.
func NewConditionStoreFrom(conditions []*ToothCondition) (*ConditionStore, error) {
	s := NewConditionStore()
	for _, c := range conditions {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a condition. It fails with a ValidationError when the surface
// set is empty or the tooth number is not a valid arch position; a rejected
// record is not stored.
func (s *ConditionStore) Add(c *ToothCondition) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.byTooth[c.ToothNumber] = append(s.byTooth[c.ToothNumber], c)
	s.all = append(s.all, c)
	return nil
}

// ConditionsFor returns the conditions attached to tooth n in insertion
// order, oldest first. The returned slice is a copy.
func (s *ConditionStore) ConditionsFor(n int) []*ToothCondition {
	conds := s.byTooth[n]
	out := make([]*ToothCondition, len(conds))
	copy(out, conds)
	return out
}

// AllConditions returns every condition in the odontogram in insertion order.
// No re-sorting happens here or downstream: report rows reflect entry order.
func (s *ConditionStore) AllConditions() []*ToothCondition {
	out := make([]*ToothCondition, len(s.all))
	copy(out, s.all)
	return out
}

// Teeth returns the tooth numbers that carry at least one condition, in the
// order their first condition was added.
func (s *ConditionStore) Teeth() []int {
	seen := make(map[int]bool, len(s.byTooth))
	var out []int
	for _, c := range s.all {
		if !seen[c.ToothNumber] {
			seen[c.ToothNumber] = true
			out = append(out, c.ToothNumber)
		}
	}
	return out
}

// Len returns the total number of stored conditions.
func (s *ConditionStore) Len() int { return len(s.all) }
