package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/teamhub/internal/employee/application"
	"github.com/davicafu/teamhub/internal/employee/domain"
	"github.com/davicafu/teamhub/pkg/envelope"
)

const invalidBodyMessage = "Corpo da requisição inválido: "

// EmployeeHandler encapsula los endpoints HTTP de employees.
// El status HTTP siempre es el statusCode del envelope.
type EmployeeHandler struct {
	service *application.EmployeeService
}

func NewEmployeeHandler(service *application.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// ---------------- Handlers ----------------

// GetEmployees endpoint GET /employees
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	envelope.Send(c, h.service.GetEmployees(c.Request.Context()))
}

// AddEmployee endpoint POST /employees
func (h *EmployeeHandler) AddEmployee(c *gin.Context) {
	var req domain.NewEmployee
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Send(c, envelope.BadRequest[domain.InsertResult](invalidBodyMessage+err.Error()))
		return
	}
	envelope.Send(c, h.service.AddEmployee(c.Request.Context(), req))
}

// DeleteEmployee endpoint DELETE /employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	envelope.Send(c, h.service.DeleteEmployee(c.Request.Context(), c.Param("id")))
}

// UpdateEmployee endpoint PUT /employees/:id (actualización parcial)
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var patch domain.EmployeePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		envelope.Send(c, envelope.BadRequest[*domain.Employee](invalidBodyMessage+err.Error()))
		return
	}
	envelope.Send(c, h.service.UpdateEmployee(c.Request.Context(), c.Param("id"), patch))
}
