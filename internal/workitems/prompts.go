// internal/workitems/prompts.go
package workitems

import (
	"bytes"
	"strings"
	"text/template"

	"accelerator-workers/internal/models"
)

// BaseContext is shared by every generation prompt.
type BaseContext struct {
	Proposal models.CapsuleProposal
	Levels   map[string]int
}

// NewBaseContext keys the startup's assigned levels by abbreviation. Missing
// dimensions render as 0.
func NewBaseContext(proposal models.CapsuleProposal, levels []models.StartupReadinessLevel) BaseContext {
	byAbbr := make(map[string]int, len(models.ReadinessTypes))
	for _, rt := range models.ReadinessTypes {
		byAbbr[rt.Abbreviation()] = 0
	}
	for _, l := range levels {
		abbr := l.ReadinessLevel.ReadinessType.Abbreviation()
		if _, seen := byAbbr[abbr]; seen && byAbbr[abbr] == 0 {
			byAbbr[abbr] = l.ReadinessLevel.Level
		}
	}
	return BaseContext{Proposal: proposal, Levels: byAbbr}
}

const baseTemplate = `Given these data:
Acceleration Proposal Title: {{.Proposal.Title}}
Duration: 3 months
I. About the startup
A. Startup Description
{{.Proposal.Description}}
B. Problem Statement
{{.Proposal.ProblemStatement}}
C. Target Market
{{.Proposal.TargetMarket}}
D. Solution Description
{{.Proposal.SolutionDescription}}
II. About the Proposed Acceleration
A. Objectives
{{.Proposal.Objectives}}
B. Scope of The Proposal
{{.Proposal.Scope}}
C. Methodology and Expected Outputs
{{.Proposal.Methodology}}
Initial Readiness Level:
TRL {{index .Levels "TRL"}}
MRL {{index .Levels "MRL"}}
ARL {{index .Levels "ARL"}}
ORL {{index .Levels "ORL"}}
RRL {{index .Levels "RRL"}}
IRL {{index .Levels "IRL"}}`

const taskTemplate = `{{template "base" .Base}}

This is the RNA for {{.RNA.ReadinessLevel.ReadinessType}} Readiness Type of the startup:
Readiness Level {{.RNA.ReadinessLevel.Level}}: {{.RNA.RNA}}

TASK: Create {{.Count}} short-term tasks for the startup's personalized learning path based on the above RNA.
The response must be a JSON array: [{"target_level": (int), "description": ""}]
Notes:
- target_level is from 1 to 9 and must be higher than the current {{.RNA.ReadinessLevel.ReadinessType}} level
- target_level must not exceed 9
- description has a max length of 500`

const initiativeTemplate = `{{template "base" .Base}}

Based on this RNS:
priorityNumber: {{.Task.PriorityNumber}}
readinessType: {{.Task.ReadinessType}}
targetLevel: {{.Task.TargetLevel}}
description: {{.Task.Description}}

TASK: Create {{.Count}} initiatives for the startup's personalized RNS.
The response must be a JSON array: [{"description": "", "measures": "", "targets": "", "remarks": ""}]
Notes:
- description max 400 characters
- measures, targets and remarks max 150 characters each`

const roadblockTemplate = `{{template "base" .Base}}

Based on these tasks:
{{range .Tasks}}- priorityNumber: {{.PriorityNumber}}, readinessType: {{.ReadinessType}}, targetLevel: {{.TargetLevel}}, status: {{.Status}}, description: {{.Description}}
{{else}}(none)
{{end}}
Based on these initiatives:
{{range .Initiatives}}- initiativeNumber: {{.InitiativeNumber}}, status: {{.Status}}, description: {{.Description}}, measures: {{.Measures}}, targets: {{.Targets}}
{{else}}(none)
{{end}}
TASK: If roadblocks exist for the startup's tasks and initiatives, create exactly {{.Count}} roadblocks. Approximate a risk number from 1 (least risk) to 5 (highest risk). Otherwise return an empty list.
The response must be a JSON array: [{"description": "", "fix": "", "riskNumber": (int)}]
Notes:
- description and fix have a max length of 500`

const rnaTemplate = `{{template "base" .Base}}

TASK: Generate an RNA (Readiness and Needs Assessment) for the following readiness levels that are missing: {{join .Missing}}.
The response must be a JSON array: [{"readiness_level_type": "", "rna": ""}]
Notes:
- readiness_level_type must be one of: {{join .Missing}}
- rna has a max length of 500 and is specific to its readiness type`

const refineTemplate = `{{template "base" .Base}}

Current {{.Noun}}:
{{range .Details}}{{.Name}}: {{.Value}}
{{end}}
Chat History:
{{range .History}}{{.Role}}: {{.Content}}{{range $name, $value := .Refinements}}
  {{$name}}: {{$value}}{{end}}
{{else}}(none)
{{end}}
User: {{.Prompt}}

TASK: Refine the {{.Noun}} according to the user's latest message.
The response must be a JSON object with ONLY the fields the user asked to change. If no field is named, refine all of them.
Available fields:
{{range .Fields}}- {{.}}
{{end}}
After the JSON object, write a line of ========= and then one or two sentences describing the changes.`

var prompts = template.Must(template.New("base").
	Funcs(template.FuncMap{"join": joinTypes}).
	Parse(baseTemplate))

func init() {
	template.Must(prompts.New("task").Parse(taskTemplate))
	template.Must(prompts.New("initiative").Parse(initiativeTemplate))
	template.Must(prompts.New("roadblock").Parse(roadblockTemplate))
	template.Must(prompts.New("rna").Parse(rnaTemplate))
	template.Must(prompts.New("refine").Parse(refineTemplate))
}

func joinTypes(types []models.ReadinessType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func render(name string, data interface{}) (string, error) {
	var b bytes.Buffer
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}

func TaskPrompt(base BaseContext, rna models.StartupRNA, count int) (string, error) {
	return render("task", struct {
		Base  BaseContext
		RNA   models.StartupRNA
		Count int
	}{base, rna, count})
}

func InitiativePrompt(base BaseContext, task models.Task, count int) (string, error) {
	return render("initiative", struct {
		Base  BaseContext
		Task  models.Task
		Count int
	}{base, task, count})
}

func RoadblockPrompt(base BaseContext, tasks []models.Task, initiatives []models.Initiative, count int) (string, error) {
	return render("roadblock", struct {
		Base        BaseContext
		Tasks       []models.Task
		Initiatives []models.Initiative
		Count       int
	}{base, tasks, initiatives, count})
}

func RNAPrompt(base BaseContext, missing []models.ReadinessType) (string, error) {
	return render("rna", struct {
		Base    BaseContext
		Missing []models.ReadinessType
	}{base, missing})
}

// ItemField is one labelled value of the item under refinement.
type ItemField struct {
	Name  string
	Value string
}

func RefinePrompt(base BaseContext, noun string, details []ItemField, history []models.ChatMessage,
	fields []string, prompt string) (string, error) {
	return render("refine", struct {
		Base    BaseContext
		Noun    string
		Details []ItemField
		History []models.ChatMessage
		Fields  []string
		Prompt  string
	}{base, noun, details, history, fields, prompt})
}
