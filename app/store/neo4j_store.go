package store

import (
	"context"
	"fmt"

	"synchrony/app/config"
	"synchrony/app/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jStore persists the dataset as a graph: Project and Task nodes,
// BELONGS_TO edges from tasks to their project, and HAS_PARENT edges
// between subtasks and parents. It keeps the same whole-document
// Load/Save contract as the file store: Save rewrites the full graph
// in one transaction.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jStore connects to Neo4j using the given settings.
func NewNeo4jStore(cfg config.Neo4jConfig) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Neo4jStore{driver: driver}, nil
}

// Close releases the underlying driver.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Load reads every project and its tasks from the graph. Node order is
// preserved via the ord property written on Save.
func (s *Neo4jStore) Load(ctx context.Context) (*models.Dataset, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		dataset := &models.Dataset{Projects: []models.Project{}}

		res, err := tx.Run(ctx,
			"MATCH (p:Project) "+
				"RETURN p.id AS id, p.title AS title, p.description AS description, "+
				"p.team_lead AS team_lead, p.members AS members "+
				"ORDER BY p.ord",
			nil,
		)
		if err != nil {
			return nil, err
		}
		index := make(map[string]int)
		for res.Next(ctx) {
			record := res.Record()
			project := models.Project{
				ID:          record.Values[0].(string),
				Title:       record.Values[1].(string),
				Description: record.Values[2].(string),
				TeamLead:    record.Values[3].(string),
				Members:     toStrings(record.Values[4]),
				Tasks:       []models.Task{},
			}
			index[project.ID] = len(dataset.Projects)
			dataset.Projects = append(dataset.Projects, project)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}

		res, err = tx.Run(ctx,
			"MATCH (t:Task)-[:BELONGS_TO]->(p:Project) "+
				"OPTIONAL MATCH (t)-[:HAS_PARENT]->(parent:Task) "+
				"RETURN p.id AS project_id, t.id AS id, t.title AS title, "+
				"t.assignee AS assignee, t.status AS status, t.deadline AS deadline, "+
				"t.priority AS priority, t.category AS category, t.created AS created, "+
				"parent.id AS parent_id "+
				"ORDER BY t.ord",
			nil,
		)
		if err != nil {
			return nil, err
		}
		for res.Next(ctx) {
			record := res.Record()
			var parentID *string
			if record.Values[9] != nil {
				id := record.Values[9].(string)
				parentID = &id
			}
			task := models.Task{
				ID:       record.Values[1].(string),
				Title:    record.Values[2].(string),
				Assignee: record.Values[3].(string),
				Status:   models.Status(record.Values[4].(string)),
				Deadline: record.Values[5].(string),
				Priority: models.Priority(record.Values[6].(string)),
				Category: record.Values[7].(string),
				Created:  record.Values[8].(string),
				ParentID: parentID,
			}
			if i, ok := index[record.Values[0].(string)]; ok {
				dataset.Projects[i].Tasks = append(dataset.Projects[i].Tasks, task)
			}
		}
		if err := res.Err(); err != nil {
			return nil, err
		}

		return dataset, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return result.(*models.Dataset), nil
}

// Save replaces the stored graph with the given dataset inside a single
// write transaction, mirroring the whole-document-replace semantics of
// the file store.
func (s *Neo4jStore) Save(ctx context.Context, dataset *models.Dataset) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx,
			"MATCH (n) WHERE n:Project OR n:Task DETACH DELETE n", nil,
		); err != nil {
			return nil, err
		}

		taskOrd := 0
		for pi, project := range dataset.Projects {
			if _, err := tx.Run(ctx,
				"CREATE (p:Project {id: $id, title: $title, description: $description, "+
					"team_lead: $team_lead, members: $members, ord: $ord})",
				map[string]any{
					"id":          project.ID,
					"title":       project.Title,
					"description": project.Description,
					"team_lead":   project.TeamLead,
					"members":     project.Members,
					"ord":         pi,
				},
			); err != nil {
				return nil, err
			}

			for _, task := range project.Tasks {
				if _, err := tx.Run(ctx,
					"MATCH (p:Project {id: $projectID}) "+
						"CREATE (t:Task {id: $id, title: $title, assignee: $assignee, "+
						"status: $status, deadline: $deadline, priority: $priority, "+
						"category: $category, created: $created, ord: $ord})-[:BELONGS_TO]->(p)",
					map[string]any{
						"projectID": project.ID,
						"id":        task.ID,
						"title":     task.Title,
						"assignee":  task.Assignee,
						"status":    string(task.Status),
						"deadline":  task.Deadline,
						"priority":  string(task.Priority),
						"category":  task.Category,
						"created":   task.Created,
						"ord":       taskOrd,
					},
				); err != nil {
					return nil, err
				}
				taskOrd++
			}

			// Parent edges after all of the project's tasks exist.
			for _, task := range project.Tasks {
				if !task.HasParent() {
					continue
				}
				if _, err := tx.Run(ctx,
					"MATCH (child:Task {id: $childID}), (parent:Task {id: $parentID}) "+
						"CREATE (child)-[:HAS_PARENT]->(parent)",
					map[string]any{
						"childID":  task.ID,
						"parentID": *task.ParentID,
					},
				); err != nil {
					return nil, err
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

func toStrings(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
