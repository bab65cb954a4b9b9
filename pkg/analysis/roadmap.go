package analysis

import (
	"fmt"
)

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

type Month struct {
	Month      int      `json:"month"`
	Title      string   `json:"title"`
	Goals      []string `json:"goals"`
	Tasks      []Task   `json:"tasks"`
	Milestones []string `json:"milestones"`
}

type Roadmap struct {
	Months []Month `json:"months"`
}

// ParseRoadmap reads a generated roadmap. Every task ends up with a unique id:
// missing ids become m<month>-t<index>, repeated ids get a numeric suffix.
func ParseRoadmap(text string) (*Roadmap, error) {
	doc, _, err := decodeObject(text)
	if err != nil {
		return nil, err
	}

	months := doc.Get("months")
	if !months.IsArray() || len(months.Array()) == 0 {
		return nil, fmt.Errorf("%w: roadmap has no months", ErrMalformed)
	}

	seen := make(map[string]bool)
	roadmap := &Roadmap{Months: make([]Month, 0)}

	for i, m := range months.Array() {
		month := Month{
			Month:      int(m.Get("month").Int()),
			Title:      str(m.Get("title")),
			Goals:      stringList(m.Get("goals")),
			Tasks:      make([]Task, 0),
			Milestones: stringList(m.Get("milestones")),
		}
		if month.Month <= 0 {
			month.Month = i + 1
		}

		for j, t := range m.Get("tasks").Array() {
			if !t.IsObject() {
				continue
			}
			id := str(t.Get("id"))
			if id == "" {
				id = fmt.Sprintf("m%d-t%d", month.Month, j+1)
			}
			if seen[id] {
				base := id
				for n := 2; seen[id]; n++ {
					id = fmt.Sprintf("%s-%d", base, n)
				}
			}
			seen[id] = true

			month.Tasks = append(month.Tasks, Task{
				ID:          id,
				Title:       str(t.Get("title")),
				Description: str(t.Get("description")),
				Priority:    str(t.Get("priority")),
			})
		}

		roadmap.Months = append(roadmap.Months, month)
	}

	return roadmap, nil
}

// InitialProgress marks every task as not completed.
func (r *Roadmap) InitialProgress() map[string]bool {
	progress := make(map[string]bool)
	for _, month := range r.Months {
		for _, task := range month.Tasks {
			progress[task.ID] = false
		}
	}
	return progress
}

func (r *Roadmap) HasTask(id string) bool {
	for _, month := range r.Months {
		for _, task := range month.Tasks {
			if task.ID == id {
				return true
			}
		}
	}
	return false
}
