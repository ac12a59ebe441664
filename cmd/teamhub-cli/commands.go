package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	dashboardApp "github.com/davicafu/teamhub/internal/dashboard/application"
	dashboardDomain "github.com/davicafu/teamhub/internal/dashboard/domain"
	"github.com/davicafu/teamhub/internal/dashboard/infra/outbound/filesystem"
	employeeDomain "github.com/davicafu/teamhub/internal/employee/domain"
)

var errUsage = errors.New("comando inválido")

type app struct {
	actions *dashboardApp.EmployeeActions
	store   *dashboardApp.Store
	out     io.Writer
	now     func() time.Time
	timeout time.Duration
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return a.list(ctx, rest)
	case "report":
		return a.report(ctx, rest)
	case "departments":
		return a.departments(ctx)
	case "add":
		return a.add(ctx, rest)
	case "update":
		return a.update(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "export":
		return a.export(ctx, rest)
	}
	return fmt.Errorf("%w: %q", errUsage, cmd)
}

// ---- Comandos ----

func (a *app) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	ativo := fs.String("ativo", "", "true|false (vazio = todos)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter, err := parseOptionalBool(*ativo)
	if err != nil {
		return fmt.Errorf("-ativo: %w", err)
	}
	if err := a.actions.EnsureLoaded(ctx); err != nil {
		return err
	}
	a.actions.SetFilter(filter)
	return a.print(a.store.State().FilteredRecords)
}

type reportView struct {
	Status       string                         `json:"status"`
	Departamento string                         `json:"departamento"`
	Opcoes       []string                       `json:"opcoesDepartamento"`
	Funcionarios []employeeDomain.Employee      `json:"funcionarios"`
	Relatorio    dashboardDomain.ReportSnapshot `json:"relatorio"`
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := newFlagSet("report")
	status := fs.String("status", dashboardDomain.StatusTodos, "todos|ativos|inativos")
	dept := fs.String("departamento", dashboardDomain.TodosDepartamentos, "departamento ou todos")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch *status {
	case dashboardDomain.StatusTodos, dashboardDomain.StatusAtivos, dashboardDomain.StatusInativos:
	default:
		return fmt.Errorf("-status inválido: %q", *status)
	}

	if err := a.actions.EnsureLoaded(ctx); err != nil {
		return err
	}
	records := a.store.State().Records
	filtered := dashboardDomain.FilterReport(records, *status, *dept)

	return a.print(reportView{
		Status:       *status,
		Departamento: *dept,
		Opcoes:       dashboardDomain.DepartmentOptions(records),
		Funcionarios: filtered,
		Relatorio:    dashboardDomain.BuildSnapshot(filtered, a.now()),
	})
}

func (a *app) departments(ctx context.Context) error {
	if err := a.actions.EnsureLoaded(ctx); err != nil {
		return err
	}
	return a.print(dashboardDomain.GroupByDepartment(a.store.State().Records))
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	var e employeeDomain.NewEmployee
	bindEmployeeFlags(fs, &e)
	sexo := fs.String("sexo", "", "feminino|masculino|outro")
	ativo := fs.Bool("ativo", true, "funcionário ativo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e.Sexo = employeeDomain.Sexo(*sexo)
	e.Ativo = *ativo

	if err := validateNewEmployee(e); err != nil {
		return err
	}
	created, err := a.actions.Add(ctx, e)
	if err != nil {
		return err
	}
	return a.print(created)
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := newFlagSet("update")
	id := fs.String("id", "", "id do funcionário")
	var fields employeeDomain.NewEmployee
	bindEmployeeFlags(fs, &fields)
	sexo := fs.String("sexo", "", "feminino|masculino|outro")
	ativo := fs.String("ativo", "", "true|false")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("%w: -id é obrigatório", errUsage)
	}

	patch, err := patchFromFlags(fs, fields, *sexo, *ativo)
	if err != nil {
		return err
	}
	updated, err := a.actions.Update(ctx, *id, patch)
	if err != nil {
		return err
	}
	return a.print(updated)
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := newFlagSet("delete")
	id := fs.String("id", "", "id do funcionário")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("%w: -id é obrigatório", errUsage)
	}
	if err := a.actions.Delete(ctx, *id); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "Funcionário %s excluído.\n", *id)
	return err
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	file := fs.String("file", "teamhub-snapshots.json", "fichero de snapshots")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.actions.EnsureLoaded(ctx); err != nil {
		return err
	}

	snap := dashboardDomain.BuildSnapshot(a.store.State().Records, a.now())
	if err := filesystem.NewJSONSnapshotStorage(*file).Save(ctx, snap); err != nil {
		return fmt.Errorf("guardar snapshot: %w", err)
	}
	return a.print(snap)
}

// ---- Helpers ----

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func bindEmployeeFlags(fs *flag.FlagSet, e *employeeDomain.NewEmployee) {
	fs.StringVar(&e.Nome, "nome", "", "nome completo")
	fs.StringVar(&e.DataNascimento, "dataNascimento", "", "AAAA-MM-DD")
	fs.StringVar(&e.CPF, "cpf", "", "CPF")
	fs.StringVar(&e.RG, "rg", "", "RG")
	fs.StringVar(&e.Email, "email", "", "e-mail")
	fs.StringVar(&e.DataContratacao, "dataContratacao", "", "AAAA-MM-DD")
	fs.StringVar(&e.Cargo, "cargo", "", "cargo")
	fs.StringVar(&e.Departamento, "departamento", "", "departamento")
}

// patchFromFlags sólo incluye las flags que se pasaron en la línea de comandos.
func patchFromFlags(fs *flag.FlagSet, v employeeDomain.NewEmployee, sexo, ativo string) (employeeDomain.EmployeePatch, error) {
	var (
		patch employeeDomain.EmployeePatch
		err   error
	)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "nome":
			patch.Nome = &v.Nome
		case "dataNascimento":
			patch.DataNascimento = &v.DataNascimento
		case "cpf":
			patch.CPF = &v.CPF
		case "rg":
			patch.RG = &v.RG
		case "email":
			patch.Email = &v.Email
		case "dataContratacao":
			patch.DataContratacao = &v.DataContratacao
		case "cargo":
			patch.Cargo = &v.Cargo
		case "departamento":
			patch.Departamento = &v.Departamento
		case "sexo":
			s := employeeDomain.Sexo(sexo)
			patch.Sexo = &s
		case "ativo":
			b, perr := strconv.ParseBool(ativo)
			if perr != nil {
				err = fmt.Errorf("-ativo: %w", perr)
				return
			}
			patch.Ativo = &b
		}
	})
	if err != nil {
		return employeeDomain.EmployeePatch{}, err
	}
	return patch, validatePatch(patch)
}

func validateNewEmployee(e employeeDomain.NewEmployee) error {
	if e.Nome == "" {
		return errors.New("-nome é obrigatório")
	}
	if _, err := employeeDomain.ParseDate(e.DataNascimento); err != nil {
		return fmt.Errorf("-dataNascimento: %w", err)
	}
	if _, err := employeeDomain.ParseDate(e.DataContratacao); err != nil {
		return fmt.Errorf("-dataContratacao: %w", err)
	}
	return validatePatch(employeeDomain.EmployeePatch{Sexo: &e.Sexo, Cargo: &e.Cargo, Departamento: &e.Departamento})
}

func validatePatch(p employeeDomain.EmployeePatch) error {
	if p.Sexo != nil && !p.Sexo.Valid() {
		return fmt.Errorf("sexo inválido: %q", *p.Sexo)
	}
	if p.Cargo != nil && !employeeDomain.IsKnownCargo(*p.Cargo) {
		return fmt.Errorf("cargo desconhecido: %q", *p.Cargo)
	}
	if p.Departamento != nil && !employeeDomain.IsKnownDepartamento(*p.Departamento) {
		return fmt.Errorf("departamento desconhecido: %q", *p.Departamento)
	}
	return nil
}

func parseOptionalBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
