package database

import (
	"context"
	"fmt"
	"strings"
)

// schemaStatements are idempotent and run on every startup
var schemaStatements = []string{
	`CREATE CONSTRAINT user_id IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
	`CREATE CONSTRAINT resource_id IF NOT EXISTS FOR (r:Resource) REQUIRE r.id IS UNIQUE`,
	`CREATE CONSTRAINT feedback_pair IF NOT EXISTS FOR (f:Feedback) REQUIRE (f.user_id, f.recommendation_id) IS UNIQUE`,
	`CREATE INDEX resource_scope IF NOT EXISTS FOR (r:Resource) ON (r.semester, r.department)`,
	`CREATE INDEX user_scope IF NOT EXISTS FOR (u:User) ON (u.semester, u.department)`,
}

// Importer sets up the schema and loads seed CSV data into Neo4j
type Importer struct {
	client *Neo4jClient
}

// NewImporter creates a new importer
func NewImporter(client *Neo4jClient) *Importer {
	return &Importer{client: client}
}

// EnsureSchema creates constraints and indexes
func (i *Importer) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := i.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	i.client.logger.Info().Int("statements", len(schemaStatements)).Msg("schema ensured")
	return nil
}

// ImportAllData imports all CSV files under baseURL in dependency order
func (i *Importer) ImportAllData(ctx context.Context, baseURL string) error {
	i.client.logger.Info().Str("base_url", baseURL).Msg("starting CSV import")

	steps := []struct {
		name string
		fn   func(context.Context, string) error
	}{
		{"users", i.ImportUsers},
		{"resources", i.ImportResources},
		{"interactions", i.ImportInteractions},
	}

	for _, step := range steps {
		if err := step.fn(ctx, baseURL); err != nil {
			return fmt.Errorf("failed to import %s: %w", step.name, err)
		}
	}

	i.client.logger.Info().Msg("CSV import completed")
	return nil
}

// ImportUsers imports users from users.csv
func (i *Importer) ImportUsers(ctx context.Context, baseURL string) error {
	query := `
		LOAD CSV WITH HEADERS FROM $csvURL AS row
		WITH row WHERE row.user_id IS NOT NULL
		MERGE (u:User {id: row.user_id})
		SET u.name = row.name,
			u.email = row.email,
			u.role = coalesce(row.role, 'student'),
			u.semester = toInteger(row.semester),
			u.department = row.department
		RETURN count(u) AS imported
	`
	return i.load(ctx, "users", csvURL(baseURL, "users.csv"), query)
}

// ImportResources imports uploaded files and links from resources.csv
func (i *Importer) ImportResources(ctx context.Context, baseURL string) error {
	query := `
		LOAD CSV WITH HEADERS FROM $csvURL AS row
		WITH row WHERE row.resource_id IS NOT NULL
		MERGE (r:Resource {id: row.resource_id})
		SET r.title = row.title,
			r.description = row.description,
			r.subject = row.subject,
			r.semester = toInteger(row.semester),
			r.department = row.department,
			r.kind = coalesce(row.kind, 'file'),
			r.url = row.url,
			r.views = coalesce(r.views, 0),
			r.likes = coalesce(r.likes, 0),
			r.downloads = coalesce(r.downloads, 0),
			r.comments = coalesce(r.comments, 0),
			r.created_at = datetime(row.created_at)
		RETURN count(r) AS imported
	`
	return i.load(ctx, "resources", csvURL(baseURL, "resources.csv"), query)
}

// ImportInteractions imports view/like/download/comment history and rebuilds counters
func (i *Importer) ImportInteractions(ctx context.Context, baseURL string) error {
	query := `
		LOAD CSV WITH HEADERS FROM $csvURL AS row
		WITH row WHERE row.user_id IS NOT NULL AND row.resource_id IS NOT NULL
		MATCH (u:User {id: row.user_id})
		MATCH (r:Resource {id: row.resource_id})
		CREATE (u)-[i:INTERACTED {type: row.type, at: datetime(row.at)}]->(r)
		RETURN count(i) AS imported
	`
	if err := i.load(ctx, "interactions", csvURL(baseURL, "interactions.csv"), query); err != nil {
		return err
	}
	return i.rebuildCounters(ctx)
}

// rebuildCounters recomputes resource counters from interaction edges
func (i *Importer) rebuildCounters(ctx context.Context) error {
	query := `
		MATCH (r:Resource)
		OPTIONAL MATCH (:User)-[i:INTERACTED]->(r)
		WITH r,
			 sum(CASE i.type WHEN 'view' THEN 1 ELSE 0 END) AS views,
			 sum(CASE i.type WHEN 'like' THEN 1 ELSE 0 END) AS likes,
			 sum(CASE i.type WHEN 'download' THEN 1 ELSE 0 END) AS downloads,
			 sum(CASE i.type WHEN 'comment' THEN 1 ELSE 0 END) AS comments
		SET r.views = views, r.likes = likes, r.downloads = downloads, r.comments = comments
		RETURN count(r) AS updated
	`
	results, err := i.client.ExecuteWrite(ctx, query, nil)
	if err != nil {
		return fmt.Errorf("failed to rebuild counters: %w", err)
	}
	if len(results) > 0 {
		i.client.logger.Info().Int("resources", asInt(results[0]["updated"])).Msg("rebuilt resource counters")
	}
	return nil
}

func (i *Importer) load(ctx context.Context, name, url, query string) error {
	results, err := i.client.ExecuteWrite(ctx, query, map[string]any{"csvURL": url})
	if err != nil {
		return err
	}
	if len(results) > 0 {
		i.client.logger.Info().Str("step", name).Int("rows", asInt(results[0]["imported"])).Msg("imported")
	}
	return nil
}

func csvURL(baseURL, file string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(baseURL, "/"), file)
}

// GetImportStatus returns node and relationship counts
func (i *Importer) GetImportStatus(ctx context.Context) (map[string]int, error) {
	query := `
		CALL { MATCH (u:User) RETURN count(u) AS users }
		CALL { MATCH (r:Resource) RETURN count(r) AS resources }
		CALL { MATCH ()-[i:INTERACTED]->() RETURN count(i) AS interactions }
		CALL { MATCH (f:Feedback) RETURN count(f) AS feedback }
		RETURN users, resources, interactions, feedback
	`

	results, err := i.client.ExecuteRead(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	status := map[string]int{"users": 0, "resources": 0, "interactions": 0, "feedback": 0}
	if len(results) == 0 {
		return status, nil
	}
	for key := range status {
		status[key] = asInt(results[0][key])
	}
	return status, nil
}
