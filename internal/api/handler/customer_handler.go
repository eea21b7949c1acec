package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/assignhub/assignment-api/internal/core/ports"
)

type CustomerHandler struct {
	customerService ports.CustomerService
}

func NewCustomerHandler(customerService ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

type createCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=50"`
	Details string `json:"details" validate:"max=100"`
}

type updateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=50"`
	Details string `json:"details" validate:"max=100"`
	Active  *bool  `json:"active"`
}

// Create stores a new customer.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /customer [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.customerService.CreateCustomer(c.Request().Context(), ports.CreateCustomerInput{
		Name:    req.Name,
		Details: req.Details,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customer)
}

// Get returns a customer by id or name, with optional projects and users.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        id        query  string  false  "Customer id"
// @Param        name      query  string  false  "Customer name"
// @Param        projects  query  bool    false  "Include projects"
// @Param        users     query  bool    false  "Include project users"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  map[string]string
// @Router       /customer [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	input := ports.GetCustomerInput{
		Name:     c.QueryParam("name"),
		Projects: c.QueryParam("projects") == "true",
		Users:    c.QueryParam("users") == "true",
	}
	if raw := c.QueryParam("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		input.ID = &id
	}

	customer, err := h.customerService.GetCustomer(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// List returns all customers, with optional projects and users.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        projects  query  bool  false  "Include projects"
// @Param        users     query  bool  false  "Include project users"
// @Success      200  {array}  domain.Customer
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customerService.ListCustomers(
		c.Request().Context(),
		c.QueryParam("projects") == "true",
		c.QueryParam("users") == "true",
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Update applies mutations to a customer.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Customer id"
// @Param        body  body      updateCustomerRequest  true  "Customer updates"
// @Success      200   {object}  domain.Customer
// @Failure      404   {object}  map[string]string
// @Router       /customer/{id} [patch]
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.customerService.UpdateCustomer(c.Request().Context(), id, ports.UpdateCustomerInput{
		Name:    req.Name,
		Details: req.Details,
		Active:  req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete removes a customer and, by cascade, its projects.
//
// @Summary      Delete a customer
// @Tags         customers
// @Param        id  path  string  true  "Customer id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /customer/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.customerService.DeleteCustomer(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
