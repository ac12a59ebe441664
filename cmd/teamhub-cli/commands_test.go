package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dashboardApp "github.com/davicafu/teamhub/internal/dashboard/application"
	"github.com/davicafu/teamhub/internal/dashboard/infra/outbound/filesystem"
	dashboardHttp "github.com/davicafu/teamhub/internal/dashboard/infra/outbound/http"
	employeeApp "github.com/davicafu/teamhub/internal/employee/application"
	employeeDomain "github.com/davicafu/teamhub/internal/employee/domain"
	employeeHttp "github.com/davicafu/teamhub/internal/employee/infra/inbound/http"
	"github.com/davicafu/teamhub/internal/employee/infra/outbound/db/memory"
)

var today = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// newApp devuelve un CLI nuevo (store vacío) contra el mismo servidor en memoria.
func newApp(t *testing.T) func() (*app, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := employeeApp.NewEmployeeService(memory.NewEmployeeRepoMemory(), nil, nil, zap.NewNop())
	srv := httptest.NewServer(employeeHttp.NewRouter(zap.NewNop(), employeeHttp.NewEmployeeHandler(svc)))
	t.Cleanup(srv.Close)

	return func() (*app, *bytes.Buffer) {
		out := &bytes.Buffer{}
		store := dashboardApp.NewStore()
		client := dashboardHttp.NewEmployeeAPIClient(srv.URL, srv.Client(), zap.NewNop())
		return &app{
			actions: dashboardApp.NewEmployeeActions(client, store, zap.NewNop()),
			store:   store,
			out:     out,
			now:     func() time.Time { return today },
			timeout: 5 * time.Second,
		}, out
	}
}

var addAna = []string{"add",
	"-nome", "Ana", "-dataNascimento", "1990-03-15", "-dataContratacao", "2024-01-05",
	"-sexo", "feminino", "-cargo", "Analista de RH", "-departamento", "RH",
}

var addBia = []string{"add",
	"-nome", "Bia", "-dataNascimento", "1985-07-20", "-dataContratacao", "2019-02-11",
	"-sexo", "feminino", "-cargo", "Gerente de Projetos", "-departamento", "RH", "-ativo=false",
}

func TestCLI_AddListUpdateDelete(t *testing.T) {
	fresh := newApp(t)
	ctx := context.Background()

	cli, out := fresh()
	require.NoError(t, cli.run(ctx, addAna))
	var ana employeeDomain.Employee
	require.NoError(t, json.Unmarshal(out.Bytes(), &ana))
	require.NotEmpty(t, ana.ID)
	assert.True(t, ana.Ativo)

	cli, _ = fresh()
	require.NoError(t, cli.run(ctx, addBia))

	cli, out = fresh()
	require.NoError(t, cli.run(ctx, []string{"list", "-ativo", "true"}))
	var listed []employeeDomain.Employee
	require.NoError(t, json.Unmarshal(out.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Ana", listed[0].Nome)

	cli, out = fresh()
	require.NoError(t, cli.run(ctx, []string{"update", "-id", ana.ID, "-cargo", "Analista de QA"}))
	var updated employeeDomain.Employee
	require.NoError(t, json.Unmarshal(out.Bytes(), &updated))
	assert.Equal(t, "Analista de QA", updated.Cargo)
	assert.Equal(t, "RH", updated.Departamento)

	cli, out = fresh()
	require.NoError(t, cli.run(ctx, []string{"delete", "-id", ana.ID}))
	assert.Contains(t, out.String(), ana.ID)

	cli, _ = fresh()
	err := cli.run(ctx, []string{"delete", "-id", ana.ID})
	assert.EqualError(t, err, employeeDomain.NotFoundMessage(ana.ID))
}

func TestCLI_ReportDepartmentsExport(t *testing.T) {
	fresh := newApp(t)
	ctx := context.Background()
	cli, _ := fresh()
	require.NoError(t, cli.run(ctx, addAna))
	cli, _ = fresh()
	require.NoError(t, cli.run(ctx, addBia))

	cli, out := fresh()
	require.NoError(t, cli.run(ctx, []string{"report", "-status", "inativos"}))
	var rep reportView
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	require.Len(t, rep.Funcionarios, 1)
	assert.Equal(t, "Bia", rep.Funcionarios[0].Nome)
	assert.Equal(t, []string{"RH"}, rep.Opcoes)
	assert.Equal(t, 1, rep.Relatorio.KPIs.TotalFuncionarios)

	cli, out = fresh()
	require.NoError(t, cli.run(ctx, []string{"departments"}))
	assert.Contains(t, out.String(), `"departmentName": "RH"`)

	file := filepath.Join(t.TempDir(), "snap.json")
	cli, _ = fresh()
	require.NoError(t, cli.run(ctx, []string{"export", "-file", file}))
	latest, err := filesystem.NewJSONSnapshotStorage(file).Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, latest.KPIs.TotalFuncionarios)
	assert.Equal(t, 1, latest.KPIs.AniversariosMes)
}

func TestCLI_RejectsBadInput(t *testing.T) {
	cli, _ := newApp(t)()
	ctx := context.Background()

	assert.ErrorIs(t, cli.run(ctx, nil), errUsage)
	assert.ErrorIs(t, cli.run(ctx, []string{"promote"}), errUsage)
	assert.ErrorIs(t, cli.run(ctx, []string{"delete"}), errUsage)

	bad := append(append([]string{}, addAna...), "-departamento", "Financeiro")
	assert.ErrorContains(t, cli.run(ctx, bad), "departamento desconhecido")

	bad = append(append([]string{}, addAna...), "-sexo", "x")
	assert.ErrorContains(t, cli.run(ctx, bad), "sexo inválido")

	assert.ErrorContains(t, cli.run(ctx, []string{"report", "-status", "alguns"}), "-status inválido")
	assert.Error(t, cli.run(ctx, []string{"list", "-ativo", "talvez"}))
	assert.Error(t, cli.run(ctx, []string{"update", "-id", "x", "-ativo", "talvez"}))
}

func TestPatchFromFlags_OnlySuppliedFields(t *testing.T) {
	fs := newFlagSet("update")
	var v employeeDomain.NewEmployee
	bindEmployeeFlags(fs, &v)
	sexo := fs.String("sexo", "", "")
	ativo := fs.String("ativo", "", "")
	require.NoError(t, fs.Parse([]string{"-nome", "", "-ativo", "false"}))

	patch, err := patchFromFlags(fs, v, *sexo, *ativo)
	require.NoError(t, err)

	names := []string{}
	for _, f := range patch.Fields() {
		names = append(names, f.Field)
	}
	// un valor vacío explícito también viaja
	assert.Equal(t, []string{"nome", "ativo"}, names)
	assert.Equal(t, "", *patch.Nome)
	assert.False(t, *patch.Ativo)
}
