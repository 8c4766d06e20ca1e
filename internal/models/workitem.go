// internal/models/workitem.go
package models

import "fmt"

// Status is the authoritative progress value shared by tasks, initiatives and roadblocks.
type Status int

const (
	StatusNew          Status = 1
	StatusScheduled    Status = 2
	StatusOnTrack      Status = 3
	StatusCompleted    Status = 4
	StatusDelayed      Status = 5
	StatusDiscontinued Status = 6
	StatusLongTerm     Status = 7
)

var statusNames = map[Status]string{
	StatusNew:          "New",
	StatusScheduled:    "Scheduled",
	StatusOnTrack:      "On Track",
	StatusCompleted:    "Completed",
	StatusDelayed:      "Delayed",
	StatusDiscontinued: "Discontinued",
	StatusLongTerm:     "Long Term",
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type ApprovalStatus int

const (
	ApprovalUnchanged ApprovalStatus = 1
	ApprovalPending   ApprovalStatus = 2
)

func (a ApprovalStatus) String() string {
	switch a {
	case ApprovalUnchanged:
		return "Unchanged"
	case ApprovalPending:
		return "Pending"
	default:
		return fmt.Sprintf("ApprovalStatus(%d)", int(a))
	}
}

// ApprovalState is the negotiated status triple.
type ApprovalState struct {
	Status          Status         `json:"status"`
	RequestedStatus Status         `json:"requestedStatus"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus"`
}

// State exposes the triple for mutation; promoted to every work item kind.
func (s *ApprovalState) State() *ApprovalState {
	return s
}

// NewApprovalState is the state of a freshly created item.
func NewApprovalState() ApprovalState {
	return ApprovalState{
		Status:          StatusNew,
		RequestedStatus: StatusNew,
		ApprovalStatus:  ApprovalUnchanged,
	}
}

type WorkItemKind string

const (
	KindTask       WorkItemKind = "task"
	KindInitiative WorkItemKind = "initiative"
	KindRoadblock  WorkItemKind = "roadblock"

	// KindRNA names a startup RNA. It has no approval lifecycle and is only
	// used for refinement conversations.
	KindRNA WorkItemKind = "rna"
)

// Valid reports whether k names an approvable work item.
func (k WorkItemKind) Valid() bool {
	switch k {
	case KindTask, KindInitiative, KindRoadblock:
		return true
	}
	return false
}

// Refinable reports whether k can carry a refinement conversation.
func (k WorkItemKind) Refinable() bool {
	return k.Valid() || k == KindRNA
}

// Task is an RNS: an action item targeting the next level of one dimension.
type Task struct {
	ApprovalState
	ID             int64         `json:"id"`
	StartupID      int64         `json:"startupId"`
	PriorityNumber int           `json:"priorityNumber"`
	Description    string        `json:"description"`
	ReadinessType  ReadinessType `json:"readinessType"`
	TargetLevelID  int64         `json:"targetLevelId"`
	TargetLevel    int           `json:"targetLevel"`
	AssigneeID     int64         `json:"assigneeId"`
	IsAIGenerated  bool          `json:"isAiGenerated"`
}

// Initiative is a sub-task under a Task.
type Initiative struct {
	ApprovalState
	ID               int64  `json:"id"`
	StartupID        int64  `json:"startupId"`
	TaskID           int64  `json:"taskId"`
	InitiativeNumber int    `json:"initiativeNumber"`
	Description      string `json:"description"`
	Measures         string `json:"measures"`
	Targets          string `json:"targets"`
	Remarks          string `json:"remarks"`
	AssigneeID       int64  `json:"assigneeId"`
	IsAIGenerated    bool   `json:"isAiGenerated"`
}

// Roadblock is a risk with a 1..5 severity.
type Roadblock struct {
	ApprovalState
	ID            int64  `json:"id"`
	StartupID     int64  `json:"startupId"`
	RiskNumber    int    `json:"riskNumber"`
	Description   string `json:"description"`
	Fix           string `json:"fix"`
	AssigneeID    int64  `json:"assigneeId"`
	IsAIGenerated bool   `json:"isAiGenerated"`
}

// Approvable is implemented by *Task, *Initiative and *Roadblock through the
// embedded ApprovalState.
type Approvable interface {
	State() *ApprovalState
}
