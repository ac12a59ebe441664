package domain

// Las constantes de los tipos de evento se definen aquí, como valores string.
const (
	EmployeeCreated = "employee.created"
	EmployeeUpdated = "employee.updated"
	EmployeeDeleted = "employee.deleted"
)

const EmployeeTopic = "employee"

