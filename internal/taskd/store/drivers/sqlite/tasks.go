package sqlite

import (
	"context"
	"strings"

	"github.com/taskdhq/taskd/internal/taskd/domain"
	"github.com/taskdhq/taskd/internal/taskd/store"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, title, description, status, owner_id, created_at, updated_at`

// taskWhere is the single predicate builder every task statement goes
// through. The owner conjunct is unconditional so a forgotten ownership check
// cannot leak another user's rows. id, status and search are optional extra
// conjuncts.
func taskWhere(ownerID, id string, status *domain.TaskStatus, search string) (string, []any) {
	conds := []string{"owner_id = ?"}
	args := []any{ownerID}

	if id != "" {
		conds = append(conds, "id = ?")
		args = append(args, id)
	}
	if status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*status))
	}
	if search != "" {
		conds = append(conds, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern)
	}

	return strings.Join(conds, " AND "), args
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Status), t.OwnerID, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *tasksRepo) GetTaskForOwner(ctx context.Context, id, ownerID string) (domain.Task, error) {
	where, args := taskWhere(ownerID, id, nil, "")
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE `+where, args...)
	return scanTask(row)
}

func (r *tasksRepo) ListTasks(ctx context.Context, f store.TaskFilter) ([]domain.Task, error) {
	where, args := taskWhere(f.OwnerID, "", f.Status, f.Search)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE `+where+` ORDER BY created_at ASC, id ASC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	where, args := taskWhere(t.OwnerID, t.ID, nil, "")
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE `+where,
		append([]any{t.Title, t.Description, string(t.Status), t.UpdatedAt}, args...)...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) DeleteTaskForOwner(ctx context.Context, id, ownerID string) error {
	where, args := taskWhere(ownerID, id, nil, "")
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE `+where, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanTask(row rowScanner) (domain.Task, error) {
	var t domain.Task
	var status string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	t.Status = domain.TaskStatus(status)
	return t, nil
}
