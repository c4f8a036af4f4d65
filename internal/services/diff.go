package services

// LineSnapshot is the comparable state of one order line at a point in time.
type LineSnapshot struct {
	ProductID    string
	Name         string
	SaleMode     string
	Qty          int
	UnitsPerPack *int
}

// OrderState is an order's status plus its line snapshots, before or after
// an edit.
type OrderState struct {
	Status string
	Lines  []LineSnapshot
}

type StatusChange struct {
	Before string
	After  string
}

type LineChange struct {
	Before LineSnapshot
	After  LineSnapshot
}

// ChangeSet is the structured result of diffing two order states. An empty
// ChangeSet means nothing differed and no notification is needed.
type ChangeSet struct {
	Status   *StatusChange
	Added    []LineSnapshot
	Removed  []LineSnapshot
	Modified []LineChange
}

func (cs ChangeSet) Empty() bool {
	return cs.Status == nil && len(cs.Added) == 0 && len(cs.Removed) == 0 && len(cs.Modified) == 0
}

// Diff compares two order states. Lines are matched by product id, not by
// position: lines only in after are added, lines only in before are removed,
// and lines in both are modified when quantity or sale mode changed.
// Unchanged lines are omitted. Pure function.
func Diff(before, after OrderState) ChangeSet {
	var cs ChangeSet

	if before.Status != after.Status {
		cs.Status = &StatusChange{Before: before.Status, After: after.Status}
	}

	prev := make(map[string]LineSnapshot, len(before.Lines))
	for _, l := range before.Lines {
		prev[l.ProductID] = l
	}
	next := make(map[string]LineSnapshot, len(after.Lines))
	for _, l := range after.Lines {
		next[l.ProductID] = l
	}

	for _, l := range after.Lines {
		b, ok := prev[l.ProductID]
		if !ok {
			cs.Added = append(cs.Added, l)
			continue
		}
		if b.Qty != l.Qty || b.SaleMode != l.SaleMode {
			cs.Modified = append(cs.Modified, LineChange{Before: b, After: l})
		}
	}
	for _, l := range before.Lines {
		if _, ok := next[l.ProductID]; !ok {
			cs.Removed = append(cs.Removed, l)
		}
	}

	return cs
}
