package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Name       string    `json:"name" validate:"required,min=3,max=50"`
	Status     string    `json:"status" validate:"required,oneof=PENDING DESIGN BUILD COMPLETE"`
	Details    string    `json:"details" validate:"max=100"`
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
}

type updateProjectRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=50"`
	Status  string `json:"status" validate:"required,oneof=PENDING DESIGN BUILD COMPLETE"`
	Details string `json:"details" validate:"max=100"`
	Active  *bool  `json:"active"`
}

// Create stores a new project under an existing customer.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /project [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		Name:       req.Name,
		Status:     domain.ProjectStatus(req.Status),
		Details:    req.Details,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// Get returns a project by id or name, with optional users.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id     query  string  false  "Project id"
// @Param        name   query  string  false  "Project name"
// @Param        users  query  bool    false  "Include assigned users"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  map[string]string
// @Router       /project [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	input := ports.GetProjectInput{
		Name:  c.QueryParam("name"),
		Users: c.QueryParam("users") == "true",
	}
	if raw := c.QueryParam("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		input.ID = &id
	}

	project, err := h.projectService.GetProject(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// List returns all projects, with optional users.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        users  query  bool  false  "Include assigned users"
// @Success      200  {array}  domain.Project
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projectService.ListProjects(c.Request().Context(), c.QueryParam("users") == "true")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Update applies mutations to a project.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Project updates"
// @Success      200   {object}  domain.Project
// @Failure      404   {object}  map[string]string
// @Router       /project/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), id, ports.UpdateProjectInput{
		Name:    req.Name,
		Status:  domain.ProjectStatus(req.Status),
		Details: req.Details,
		Active:  req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete removes a project; assigned users are detached.
//
// @Summary      Delete a project
// @Tags         projects
// @Param        id  path  string  true  "Project id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /project/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.projectService.DeleteProject(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
