package domain

// TargetKind discriminates the entity an overview is computed for.
type TargetKind string

const (
	TargetAccount  TargetKind = "account"
	TargetCategory TargetKind = "category"
	TargetTag      TargetKind = "tag"
	// TargetPrefix marks statistic rows that belong to a prefixed no-model
	// bucket rather than a concrete entity.
	TargetPrefix TargetKind = "prefix"
)

// OverviewTarget is the tagged variant a period overview is requested for.
// Kind selects the behavior; TargetID identifies the entity; Name is
// presentation metadata passed through to route building.
type OverviewTarget struct {
	Kind     TargetKind `json:"kind"`
	TargetID string     `json:"targetID"`
	Name     string     `json:"name"`
}

// NoModelKind names the model whose unassigned transactions a no-model
// overview aggregates.
type NoModelKind string

const (
	NoBudget   NoModelKind = "budget"
	NoCategory NoModelKind = "category"
)

// Prefix is the statistic key prefix for this no-model bucket, e.g.
// "no_budget" for withdrawals without a budget.
func (k NoModelKind) Prefix() string {
	return "no_" + string(k)
}
