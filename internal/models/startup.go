// internal/models/startup.go
package models

// Role is the actor role carried on every mutating request.
type Role string

const (
	RoleStartup Role = "Startup"
	RoleMentor  Role = "Mentor"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
)

// Valid reports whether r is one of the known actor roles. Matching is
// exact: "startup" is not RoleStartup.
func (r Role) Valid() bool {
	switch r {
	case RoleStartup, RoleMentor, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsPrivileged reports whether the role may change an authoritative status.
func (r Role) IsPrivileged() bool {
	return r.Valid() && r != RoleStartup
}

type QualificationStatus int

const (
	QualificationPending    QualificationStatus = 1
	QualificationQualified  QualificationStatus = 2
	QualificationWaitlisted QualificationStatus = 3
	QualificationCompleted  QualificationStatus = 4
)

func (s QualificationStatus) String() string {
	switch s {
	case QualificationPending:
		return "Pending"
	case QualificationQualified:
		return "Qualified"
	case QualificationWaitlisted:
		return "Waitlisted"
	case QualificationCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Startup is the aggregate root for answers, readiness levels and work items.
type Startup struct {
	ID                  int64               `json:"id"`
	UserID              int64               `json:"userId"`
	UserEmail           string              `json:"userEmail,omitempty"`
	Name                string              `json:"name"`
	QualificationStatus QualificationStatus `json:"qualificationStatus"`
}

// CapsuleProposal is the startup's project description used as base prompt context.
type CapsuleProposal struct {
	StartupID           int64  `json:"startupId"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	ProblemStatement    string `json:"problemStatement"`
	TargetMarket        string `json:"targetMarket"`
	SolutionDescription string `json:"solutionDescription"`
	Objectives          string `json:"objectives"`
	Scope               string `json:"scope"`
	Methodology         string `json:"methodology"`
}

type WaitlistMessage struct {
	ID        int64  `json:"id"`
	StartupID int64  `json:"startupId"`
	ManagerID int64  `json:"managerId"`
	Message   string `json:"message"`
}
