package models

// Project groups a team and its tasks. Members are fixed at creation
// time; tasks are only ever appended or status-updated.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TeamLead    string   `json:"team_lead"`
	Members     []string `json:"members"`
	Tasks       []Task   `json:"tasks"`
}

// FindTask returns a pointer to the task with the given id, or nil.
func (p *Project) FindTask(taskID string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i]
		}
	}
	return nil
}

// HasMember reports whether name matches one of the project's members
// under the normalized name policy.
func (p *Project) HasMember(name string) bool {
	want := NormalizeName(name)
	for _, m := range p.Members {
		if NormalizeName(m) == want {
			return true
		}
	}
	return false
}

// Dataset is the entire persisted collection of projects. It is loaded
// and rewritten as one unit on every mutation.
type Dataset struct {
	Projects []Project `json:"projects"`
}

// FindProject returns a pointer to the project with the given id, or nil.
func (d *Dataset) FindProject(projectID string) *Project {
	for i := range d.Projects {
		if d.Projects[i].ID == projectID {
			return &d.Projects[i]
		}
	}
	return nil
}

// FindProjectByTitle returns the first project with the given title, or
// nil. Titles are not unique; collisions resolve by insertion order.
func (d *Dataset) FindProjectByTitle(title string) *Project {
	for i := range d.Projects {
		if d.Projects[i].Title == title {
			return &d.Projects[i]
		}
	}
	return nil
}
