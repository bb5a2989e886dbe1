package formatter

import (
	"fmt"

	"github.com/alexanderramin/consistency/internal/domain"
)

// FormatTaskList renders the task table in display order.
func FormatTaskList(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks yet.") + "\n"
	}

	rows := make([][]string, 0, len(tasks))
	n := 0
	for _, t := range tasks {
		pos := Dim("-")
		name := TaskLabel(t)
		if t.IsRemoved() {
			name = Dim(name + " (removed " + t.RemovedAt.Format("Jan 2") + ")")
		} else {
			n++
			pos = fmt.Sprintf("%d", n)
		}
		rows = append(rows, []string{pos, name, CadenceBadge(t.Cadence), TruncID(t.ID)})
	}
	return RenderTable([]string{"#", "TASK", "CADENCE", "ID"}, rows)
}
