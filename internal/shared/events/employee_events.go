package events

// Contratos de integración del contexto employee. Se definen planos, sin depender del dominio.

type EmployeeSnapshot struct {
	ID              string `json:"id"`
	Nome            string `json:"nome"`
	DataNascimento  string `json:"dataNascimento"`
	Email           string `json:"email"`
	DataContratacao string `json:"dataContratacao"`
	Sexo            string `json:"sexo"`
	Cargo           string `json:"cargo"`
	Departamento    string `json:"departamento"`
	Ativo           bool   `json:"ativo"`
}

// Payload de cada tipo de evento. En JSON quedan planos, igual que el snapshot.
type EmployeeCreated struct {
	EmployeeSnapshot
}

type EmployeeUpdated struct {
	EmployeeSnapshot
}

type EmployeeDeleted struct {
	EmployeeSnapshot
}
