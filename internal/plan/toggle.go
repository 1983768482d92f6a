package plan

// Toggle returns a new Plan where the task whose ID equals id has its status
// flipped between todo and done. Every other task is carried over untouched.
// If no task matches, the input plan is returned as-is.
//
// Toggle never mutates the input plan or its task slice; callers compare the
// returned value against the input to detect whether anything changed.
func Toggle(p Plan, id int) Plan {
	idx := -1
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return p
	}

	tasks := make([]Task, len(p.Tasks))
	copy(tasks, p.Tasks)

	if tasks[idx].Status == TaskStatusDone {
		tasks[idx].Status = TaskStatusTodo
	} else {
		tasks[idx].Status = TaskStatusDone
	}

	return Plan{Title: p.Title, Tasks: tasks}
}
