// pkg/registry/schema.go
package registry

// Worker categories. Each maps to a directory under internal/workers.
const (
	CategoryReadiness  = "readiness"
	CategoryWorkItems  = "workitems"
	CategoryApproval   = "approval"
	CategoryAssessment = "assessment"
	CategoryStartup    = "startup"
)

var knownCategories = map[string]bool{
	CategoryReadiness:  true,
	CategoryWorkItems:  true,
	CategoryApproval:   true,
	CategoryAssessment: true,
	CategoryStartup:    true,
}

const (
	StatusCompleted = "completed"
	StatusPlanned   = "planned"
)

// ActivityRegistry is the on-disk catalog of job types the BPMN models may
// reference.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one job type. InputSchema and OutputSchema are JSON
// Schema fragments; the worker generator reads "properties" and "required".
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description,omitempty"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version,omitempty"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus,omitempty"`
	InputSchema          map[string]interface{} `json:"inputSchema,omitempty"`
	OutputSchema         map[string]interface{} `json:"outputSchema,omitempty"`
	ErrorCodes           []string               `json:"errorCodes,omitempty"`
	Timeout              string                 `json:"timeout,omitempty"`
	Retries              int                    `json:"retries,omitempty"`
	Workflows            []string               `json:"workflows,omitempty"`
	Tags                 []string               `json:"tags,omitempty"`
}

// IsKnownCategory reports whether c is a worker category this service hosts.
func IsKnownCategory(c string) bool {
	return knownCategories[c]
}
