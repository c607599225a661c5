package plainly

import (
	"context"
	"net/http"

	"github.com/koios/plainly-mcp/pkg/models"
)

const dashboardURL = "https://app.plainlyvideos.com"

// ListProjects lists every project visible to the API key
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project
func (c *Client) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, http.MethodGet, pathf("/projects/%s", projectID), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject always fails: projects can only be created from the dashboard
func (c *Client) CreateProject(ctx context.Context, changes models.ProjectChanges) (*models.Project, error) {
	return nil, &UnsupportedError{
		Operation: "create_project",
		Message: "Creating projects via API is not supported by Plainly. " +
			"Please create projects through the Plainly dashboard at " + dashboardURL + ". " +
			"Once created, you can use list_projects to get the project ID and then use all other tools.",
	}
}

// UpdateProject always fails: projects can only be edited from the dashboard
func (c *Client) UpdateProject(ctx context.Context, projectID string, changes models.ProjectChanges) (*models.Project, error) {
	return nil, &UnsupportedError{
		Operation: "update_project",
		Message: "Updating projects via API is not supported by Plainly. " +
			"Please update projects through the Plainly dashboard at " + dashboardURL + ".",
	}
}

// DeleteProject always fails: projects can only be deleted from the dashboard
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return &UnsupportedError{
		Operation: "delete_project",
		Message: "Deleting projects via API is not supported by Plainly. " +
			"Please delete projects through the Plainly dashboard at " + dashboardURL + ".",
	}
}

// ListTemplates lists the templates of a project
func (c *Client) ListTemplates(ctx context.Context, projectID string) ([]models.Template, error) {
	var templates []models.Template
	if err := c.do(ctx, http.MethodGet, pathf("/projects/%s/templates", projectID), nil, nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// GetTemplate fetches one template of a project
func (c *Client) GetTemplate(ctx context.Context, projectID, templateID string) (*models.Template, error) {
	var template models.Template
	if err := c.do(ctx, http.MethodGet, pathf("/projects/%s/templates/%s", projectID, templateID), nil, nil, &template); err != nil {
		return nil, err
	}
	return &template, nil
}
