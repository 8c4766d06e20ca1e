// Package approval implements the status negotiation shared by tasks,
// initiatives and roadblocks.
package approval

import "accelerator-workers/internal/models"

// Outcome describes what Apply did to an item.
type Outcome string

const (
	OutcomeNoop     Outcome = "noop"
	OutcomeProposed Outcome = "proposed"
	OutcomeApplied  Outcome = "applied"
)

// Apply runs one status request against item. A startup can only propose a
// status; a privileged role sets it outright.
func Apply(item models.Approvable, role models.Role, newStatus models.Status) Outcome {
	st := item.State()
	if st.RequestedStatus == newStatus {
		return OutcomeNoop
	}

	if !role.IsPrivileged() {
		if st.Status == newStatus {
			st.ApprovalStatus = models.ApprovalUnchanged
		} else {
			st.ApprovalStatus = models.ApprovalPending
		}
		st.RequestedStatus = newStatus
		return OutcomeProposed
	}

	st.Status = newStatus
	st.RequestedStatus = newStatus
	st.ApprovalStatus = models.ApprovalUnchanged
	return OutcomeApplied
}
