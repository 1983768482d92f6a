package plan

// Plan is the structured, titled collection of tasks produced from one prompt.
// Tasks keep the order the model generated them in.
type Plan struct {
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// Task represents a single actionable unit within a plan.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	FilePath    string `json:"file_path,omitempty"`
	CodeSnippet string `json:"code_snippet,omitempty"`
}

// Task status constants
const (
	TaskStatusTodo = "todo"
	TaskStatusDone = "done"
)

// DoneCount returns how many tasks have been marked done.
func (p Plan) DoneCount() int {
	count := 0
	for i := range p.Tasks {
		if p.Tasks[i].Status == TaskStatusDone {
			count++
		}
	}
	return count
}
