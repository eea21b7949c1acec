package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/assignhub/assignment-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	auth        *AuthHandler
}

func NewUserHandler(userService ports.UserService, auth *AuthHandler) *UserHandler {
	return &UserHandler{userService: userService, auth: auth}
}

type createUserRequest struct {
	Username  string `json:"username" validate:"required,len=8,alpha"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`
	Role      string `json:"role" validate:"required,oneof=MANAGER ENGINEER"`
	Email     string `json:"email" validate:"required,email,max=30"`
}

type updateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email,max=30"`
}

type updateUserProjectRequest struct {
	ProjectID *uuid.UUID `json:"project_id"`
}

// Create registers a new user and sets the session cookie.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Param        body  body  createUserRequest  true  "User registration details"
// @Success      201
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.userService.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}

	h.auth.SetSessionCookie(c, token)
	return c.NoContent(http.StatusCreated)
}

// UpdateSelf updates the authenticated user's own profile.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "Profile updates"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /user [patch]
func (h *UserHandler) UpdateSelf(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), token.ID, ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Get returns a user by id, optionally with its project.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id       path   string  true   "User id"
// @Param        project  query  bool    false  "Include assigned project"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	withProject := c.QueryParam("project") == "true"
	user, err := h.userService.GetUserByID(c.Request().Context(), id, withProject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Me returns the authenticated user, project included.
//
// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetCurrentUser(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns all users, optionally with their projects.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        projects  query  bool  false  "Include assigned projects"
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	withProjects := c.QueryParam("projects") == "true"
	users, err := h.userService.ListUsers(c.Request().Context(), withProjects)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Delete removes a user.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProject assigns a project to a user, or detaches it when project_id
// is null.
//
// @Summary      Assign or unassign a user's project
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "User id"
// @Param        body  body  updateUserProjectRequest  true  "Project assignment"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /user/{id}/project [patch]
func (h *UserHandler) UpdateProject(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.userService.UpdateUserProject(c.Request().Context(), id, req.ProjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// parseID parses the named path parameter as a UUID.
func parseID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
