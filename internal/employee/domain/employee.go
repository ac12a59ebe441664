package domain

import (
	"fmt"
	"time"
)

// ---------------- Enumeraciones ----------------

type Sexo string

const (
	SexoFeminino  Sexo = "feminino"
	SexoMasculino Sexo = "masculino"
	SexoOutro     Sexo = "outro"
)

const (
	DepartamentoEngenharia = "Engenharia"
	DepartamentoMarketing  = "Marketing"
	DepartamentoProduto    = "Produto"
	DepartamentoRH         = "RH"
)

// Departamentos es la lista fija que ofrece el formulario de alta.
var Departamentos = []string{
	DepartamentoEngenharia,
	DepartamentoMarketing,
	DepartamentoProduto,
	DepartamentoRH,
}

// Cargos es la lista fija de puestos.
var Cargos = []string{
	"Analista de QA",
	"Analista de RH",
	"Desenvolvedor Backend Junior",
	"Desenvolvedor Backend Pleno",
	"Desenvolvedor Backend Senior",
	"Desenvolvedor Frontend Junior",
	"Desenvolvedor Frontend Pleno",
	"Desenvolvedor Frontend Senior",
	"Desenvolvedor Fullstack Junior",
	"Desenvolvedor Fullstack Pleno",
	"Desenvolvedor Fullstack Senior",
	"DevOps Junior",
	"DevOps Pleno",
	"DevOps Senior",
	"Estagiario",
	"Gerente de Projetos",
	"UI/UX Designer",
}

func (s Sexo) Valid() bool {
	switch s {
	case SexoFeminino, SexoMasculino, SexoOutro:
		return true
	}
	return false
}

func IsKnownDepartamento(d string) bool { return contains(Departamentos, d) }

func IsKnownCargo(c string) bool { return contains(Cargos, c) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ---------------- Entidades ----------------

// Employee representa un funcionario persistido. El ID lo asigna el almacenamiento.
type Employee struct {
	ID              string `json:"_id"`
	Nome            string `json:"nome"`
	DataNascimento  string `json:"dataNascimento"`
	CPF             string `json:"cpf"`
	RG              string `json:"rg"`
	Email           string `json:"email"`
	DataContratacao string `json:"dataContratacao"`
	Sexo            Sexo   `json:"sexo"`
	Cargo           string `json:"cargo"`
	Departamento    string `json:"departamento"`
	Ativo           bool   `json:"ativo"`
}

// NewEmployee son los datos de alta: un Employee sin ID.
type NewEmployee struct {
	Nome            string `json:"nome"`
	DataNascimento  string `json:"dataNascimento"`
	CPF             string `json:"cpf"`
	RG              string `json:"rg"`
	Email           string `json:"email"`
	DataContratacao string `json:"dataContratacao"`
	Sexo            Sexo   `json:"sexo"`
	Cargo           string `json:"cargo"`
	Departamento    string `json:"departamento"`
	Ativo           bool   `json:"ativo"`
}

// WithID construye el Employee resultante de una inserción.
func (n NewEmployee) WithID(id string) Employee {
	return Employee{
		ID:              id,
		Nome:            n.Nome,
		DataNascimento:  n.DataNascimento,
		CPF:             n.CPF,
		RG:              n.RG,
		Email:           n.Email,
		DataContratacao: n.DataContratacao,
		Sexo:            n.Sexo,
		Cargo:           n.Cargo,
		Departamento:    n.Departamento,
		Ativo:           n.Ativo,
	}
}

// InsertResult refleja la respuesta de una inserción (mismo formato JSON que el driver de Mongo).
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// EmployeePatch describe una actualización parcial.
// Los punteros distinguen "campo omitido" de "campo informado".
type EmployeePatch struct {
	Nome            *string `json:"nome,omitempty"`
	DataNascimento  *string `json:"dataNascimento,omitempty"`
	CPF             *string `json:"cpf,omitempty"`
	RG              *string `json:"rg,omitempty"`
	Email           *string `json:"email,omitempty"`
	DataContratacao *string `json:"dataContratacao,omitempty"`
	Sexo            *Sexo   `json:"sexo,omitempty"`
	Cargo           *string `json:"cargo,omitempty"`
	Departamento    *string `json:"departamento,omitempty"`
	Ativo           *bool   `json:"ativo,omitempty"`
}

// PatchField es un par campo/valor ya resuelto de un EmployeePatch.
// Field usa el nombre JSON, que coincide con el nombre del campo en Mongo.
type PatchField struct {
	Field string
	Value interface{}
}

// Fields devuelve los campos informados, siempre en el mismo orden.
func (p EmployeePatch) Fields() []PatchField {
	var out []PatchField
	add := func(name string, set bool, v interface{}) {
		if set {
			out = append(out, PatchField{Field: name, Value: v})
		}
	}
	add("nome", p.Nome != nil, deref(p.Nome))
	add("dataNascimento", p.DataNascimento != nil, deref(p.DataNascimento))
	add("cpf", p.CPF != nil, deref(p.CPF))
	add("rg", p.RG != nil, deref(p.RG))
	add("email", p.Email != nil, deref(p.Email))
	add("dataContratacao", p.DataContratacao != nil, deref(p.DataContratacao))
	if p.Sexo != nil {
		out = append(out, PatchField{Field: "sexo", Value: string(*p.Sexo)})
	}
	add("cargo", p.Cargo != nil, deref(p.Cargo))
	add("departamento", p.Departamento != nil, deref(p.Departamento))
	if p.Ativo != nil {
		out = append(out, PatchField{Field: "ativo", Value: *p.Ativo})
	}
	return out
}

// IsEmpty indica que no se informó ningún campo.
func (p EmployeePatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Apply mezcla los campos informados sobre e. El ID nunca se toca.
func (p EmployeePatch) Apply(e *Employee) {
	if p.Nome != nil {
		e.Nome = *p.Nome
	}
	if p.DataNascimento != nil {
		e.DataNascimento = *p.DataNascimento
	}
	if p.CPF != nil {
		e.CPF = *p.CPF
	}
	if p.RG != nil {
		e.RG = *p.RG
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.DataContratacao != nil {
		e.DataContratacao = *p.DataContratacao
	}
	if p.Sexo != nil {
		e.Sexo = *p.Sexo
	}
	if p.Cargo != nil {
		e.Cargo = *p.Cargo
	}
	if p.Departamento != nil {
		e.Departamento = *p.Departamento
	}
	if p.Ativo != nil {
		e.Ativo = *p.Ativo
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ---------------- Fechas ----------------

var dateLayouts = []string{"2006-01-02", time.RFC3339Nano, "2006-01-02T15:04:05"}

// ParseDate interpreta una fecha ISO (sólo fecha o fecha-hora) en UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// BirthDate devuelve la fecha de nacimiento; la fecha cero si no se puede interpretar.
func (e Employee) BirthDate() time.Time {
	t, _ := ParseDate(e.DataNascimento)
	return t
}

// HireDate devuelve la fecha de contratación; la fecha cero si no se puede interpretar.
func (e Employee) HireDate() time.Time {
	t, _ := ParseDate(e.DataContratacao)
	return t
}

// AgeAt calcula la edad en años completos en la fecha now, leída en UTC igual que las fechas guardadas.
// Si el cumpleaños de este año todavía no llegó, se resta uno.
func (e Employee) AgeAt(now time.Time) int {
	now = now.UTC()
	birth := e.BirthDate()
	years := now.Year() - birth.Year()
	m := now.Month() - birth.Month()
	if m < 0 || (m == 0 && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// TenureYearsAt devuelve la antigüedad en años: |now - contratación| en días / 365.25.
func (e Employee) TenureYearsAt(now time.Time) float64 {
	diff := now.Sub(e.HireDate())
	if diff < 0 {
		diff = -diff
	}
	return diff.Hours() / 24 / 365.25
}
