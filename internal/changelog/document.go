package changelog

// Document is the part of a parsed changelog the checker needs.
type Document struct {
	// RootName is the qualified name of the root element
	RootName string

	// LogicalFilePath is the root's logicalFilePath attribute ("" when absent)
	LogicalFilePath    string
	HasLogicalFilePath bool

	// ChangeSets lists every changeSet element below the root in document order
	ChangeSets []ChangeSet
}

// ChangeSet is a single change entry. Context presence is tracked separately
// from its value because context="" still counts as declared.
type ChangeSet struct {
	Author     string
	ID         string
	Context    string
	HasContext bool
	Line       int
}

// FirstWithoutContext returns the first changeSet lacking a context attribute.
func (d *Document) FirstWithoutContext() (ChangeSet, bool) {
	for _, cs := range d.ChangeSets {
		if !cs.HasContext {
			return cs, true
		}
	}
	return ChangeSet{}, false
}
