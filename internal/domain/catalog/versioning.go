package catalog

// ComponentStatus is the lifecycle status shared by recipes and packs.
// DRAFT components are freely mutable; editing an ACTIVE component first
// snapshots the head into an immutable version record.
type ComponentStatus string

const (
	StatusDraft      ComponentStatus = "draft"
	StatusActive     ComponentStatus = "active"
	StatusArchived   ComponentStatus = "archived"
	StatusDeprecated ComponentStatus = "deprecated"
)

// IsValid checks if the status is a valid ComponentStatus
func (s ComponentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived, StatusDeprecated:
		return true
	}
	return false
}

// String returns the string representation of ComponentStatus
func (s ComponentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ComponentStatus) CanTransitionTo(target ComponentStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusActive || target == StatusArchived
	case StatusActive:
		return target == StatusDraft || target == StatusArchived || target == StatusDeprecated
	case StatusArchived, StatusDeprecated:
		return false
	}
	return false
}

// snapshotsOnEdit is the single place deciding whether an edit to a
// component must snapshot the head first. Both the recipe and pack update
// paths go through this rule.
func snapshotsOnEdit(status ComponentStatus) bool {
	return status == StatusActive
}
