// internal/store/workitems.go
package store

import (
	"context"
	"fmt"

	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/models"

	"github.com/lib/pq"
)

// WorkItemRepository persists tasks (rns), initiatives and roadblocks.
type WorkItemRepository struct{}

func NewWorkItemRepository() *WorkItemRepository {
	return &WorkItemRepository{}
}

var workItemTables = map[models.WorkItemKind]string{
	models.KindTask:       "rns",
	models.KindInitiative: "initiatives",
	models.KindRoadblock:  "roadblocks",
}

func tableFor(kind models.WorkItemKind) (string, error) {
	table, ok := workItemTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown work item kind %q", kind)
	}
	return table, nil
}

// closedStatuses are left out of roadblock prompt context.
var closedStatuses = []int64{int64(models.StatusDiscontinued), int64(models.StatusCompleted)}

// ==========================
// Tasks
// ==========================

const taskSelect = `
		SELECT t.id, t.startup_id, t.priority_number, t.description, t.readiness_type,
		       t.target_level_id, COALESCE(rl.level, 0), t.status, t.requested_status,
		       t.approval_status, COALESCE(t.assignee_id, 0), t.is_ai_generated
		FROM rns t
		LEFT JOIN readiness_levels rl ON rl.id = t.target_level_id`

func scanTask(row scanner) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.StartupID, &t.PriorityNumber, &t.Description, &t.ReadinessType,
		&t.TargetLevelID, &t.TargetLevel, &t.Status, &t.RequestedStatus,
		&t.ApprovalStatus, &t.AssigneeID, &t.IsAIGenerated)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *WorkItemRepository) listTasks(ctx context.Context, q database.DBTX, op, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, queryFailed(op, err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}
	return tasks, nil
}

// ListTasksByIDs returns only the tasks among ids that belong to startupID.
func (r *WorkItemRepository) ListTasksByIDs(ctx context.Context, q database.DBTX, startupID int64, ids []int64) ([]models.Task, error) {
	return r.listTasks(ctx, q, "list tasks by ids", taskSelect+`
		WHERE t.startup_id = $1 AND t.id = ANY($2)
		ORDER BY t.priority_number`, startupID, pq.Array(ids))
}

func (r *WorkItemRepository) ListOpenTasks(ctx context.Context, q database.DBTX, startupID int64) ([]models.Task, error) {
	return r.listTasks(ctx, q, "list open tasks", taskSelect+`
		WHERE t.startup_id = $1 AND NOT (t.status = ANY($2))
		ORDER BY t.priority_number`, startupID, pq.Array(closedStatuses))
}

func (r *WorkItemRepository) InsertTask(ctx context.Context, q database.DBTX, t *models.Task) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO rns (startup_id, priority_number, description, readiness_type, target_level_id,
		                 status, requested_status, approval_status, assignee_id, is_ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		t.StartupID, t.PriorityNumber, t.Description, t.ReadinessType, t.TargetLevelID,
		t.Status, t.RequestedStatus, t.ApprovalStatus, t.AssigneeID, t.IsAIGenerated,
	).Scan(&id)
	if err != nil {
		return 0, queryFailed("insert task", err)
	}
	return id, nil
}

// ShiftTaskPriorities pushes every task of the startup back by n positions.
func (r *WorkItemRepository) ShiftTaskPriorities(ctx context.Context, q database.DBTX, startupID int64, n int) (int64, error) {
	return r.shift(ctx, q, "shift task priorities", `
		UPDATE rns SET priority_number = priority_number + $1 WHERE startup_id = $2`, n, startupID)
}

// ==========================
// Initiatives
// ==========================

const initiativeSelect = `
		SELECT id, startup_id, rns_id, initiative_number, description, COALESCE(measures, ''),
		       COALESCE(targets, ''), COALESCE(remarks, ''), status, requested_status,
		       approval_status, COALESCE(assignee_id, 0), is_ai_generated
		FROM initiatives`

func scanInitiative(row scanner) (*models.Initiative, error) {
	var i models.Initiative
	err := row.Scan(&i.ID, &i.StartupID, &i.TaskID, &i.InitiativeNumber, &i.Description, &i.Measures,
		&i.Targets, &i.Remarks, &i.Status, &i.RequestedStatus,
		&i.ApprovalStatus, &i.AssigneeID, &i.IsAIGenerated)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *WorkItemRepository) ListOpenInitiatives(ctx context.Context, q database.DBTX, startupID int64) ([]models.Initiative, error) {
	rows, err := q.QueryContext(ctx, initiativeSelect+`
		WHERE startup_id = $1 AND NOT (status = ANY($2))
		ORDER BY initiative_number`, startupID, pq.Array(closedStatuses))
	if err != nil {
		return nil, queryFailed("list open initiatives", err)
	}
	defer rows.Close()

	var initiatives []models.Initiative
	for rows.Next() {
		i, err := scanInitiative(rows)
		if err != nil {
			return nil, queryFailed("scan initiative", err)
		}
		initiatives = append(initiatives, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate initiatives", err)
	}
	return initiatives, nil
}

func (r *WorkItemRepository) InsertInitiative(ctx context.Context, q database.DBTX, i *models.Initiative) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO initiatives (startup_id, rns_id, initiative_number, description, measures, targets, remarks,
		                         status, requested_status, approval_status, assignee_id, is_ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		i.StartupID, i.TaskID, i.InitiativeNumber, i.Description, i.Measures, i.Targets, i.Remarks,
		i.Status, i.RequestedStatus, i.ApprovalStatus, i.AssigneeID, i.IsAIGenerated,
	).Scan(&id)
	if err != nil {
		return 0, queryFailed("insert initiative", err)
	}
	return id, nil
}

func (r *WorkItemRepository) ShiftInitiativeNumbers(ctx context.Context, q database.DBTX, startupID int64, n int) (int64, error) {
	return r.shift(ctx, q, "shift initiative numbers", `
		UPDATE initiatives SET initiative_number = initiative_number + $1 WHERE startup_id = $2`, n, startupID)
}

// ==========================
// Roadblocks
// ==========================

const roadblockSelect = `
		SELECT id, startup_id, risk_number, description, COALESCE(fix, ''), status, requested_status,
		       approval_status, COALESCE(assignee_id, 0), is_ai_generated
		FROM roadblocks`

func scanRoadblock(row scanner) (*models.Roadblock, error) {
	var rb models.Roadblock
	err := row.Scan(&rb.ID, &rb.StartupID, &rb.RiskNumber, &rb.Description, &rb.Fix, &rb.Status,
		&rb.RequestedStatus, &rb.ApprovalStatus, &rb.AssigneeID, &rb.IsAIGenerated)
	if err != nil {
		return nil, err
	}
	return &rb, nil
}

func (r *WorkItemRepository) InsertRoadblock(ctx context.Context, q database.DBTX, rb *models.Roadblock) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO roadblocks (startup_id, risk_number, description, fix,
		                        status, requested_status, approval_status, assignee_id, is_ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		rb.StartupID, rb.RiskNumber, rb.Description, rb.Fix,
		rb.Status, rb.RequestedStatus, rb.ApprovalStatus, rb.AssigneeID, rb.IsAIGenerated,
	).Scan(&id)
	if err != nil {
		return 0, queryFailed("insert roadblock", err)
	}
	return id, nil
}

// ==========================
// Approval state
// ==========================

// GetWorkItem loads one work item of the given kind as *Task, *Initiative or *Roadblock.
func (r *WorkItemRepository) GetWorkItem(ctx context.Context, q database.DBTX, kind models.WorkItemKind, id int64) (models.Approvable, error) {
	var (
		item models.Approvable
		err  error
	)
	switch kind {
	case models.KindTask:
		item, err = scanTask(q.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id))
	case models.KindInitiative:
		item, err = scanInitiative(q.QueryRowContext(ctx, initiativeSelect+` WHERE id = $1`, id))
	case models.KindRoadblock:
		item, err = scanRoadblock(q.QueryRowContext(ctx, roadblockSelect+` WHERE id = $1`, id))
	default:
		return nil, fmt.Errorf("unknown work item kind %q", kind)
	}
	if err != nil {
		return nil, queryFailed("get "+string(kind), err)
	}
	return item, nil
}

func (r *WorkItemRepository) UpdateApprovalState(ctx context.Context, q database.DBTX, kind models.WorkItemKind, id int64, state models.ApprovalState) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `
		UPDATE `+table+`
		SET status = $1, requested_status = $2, approval_status = $3
		WHERE id = $4`, state.Status, state.RequestedStatus, state.ApprovalStatus, id)
	if err != nil {
		return queryFailed("update "+string(kind)+" approval state", err)
	}
	return nil
}

func (r *WorkItemRepository) shift(ctx context.Context, q database.DBTX, op, query string, n int, startupID int64) (int64, error) {
	res, err := q.ExecContext(ctx, query, n, startupID)
	if err != nil {
		return 0, queryFailed(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, queryFailed(op, err)
	}
	return affected, nil
}
