package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/teamhub/internal/config"
	dashboardApp "github.com/davicafu/teamhub/internal/dashboard/application"
	dashboardHttp "github.com/davicafu/teamhub/internal/dashboard/infra/outbound/http"
	"github.com/davicafu/teamhub/pkg/logger"
)

const usage = `uso: teamhub-cli [-api URL] <comando> [flags]

comandos:
  list         lista funcionários (-ativo true|false)
  report       relatório (-status todos|ativos|inativos, -departamento NOME)
  departments  funcionários agrupados por departamento
  add          cadastra um funcionário
  update       atualiza campos (-id obrigatório)
  delete       exclui (-id obrigatório)
  export       grava um snapshot dos relatórios (-file)
`

// ---------------- Main ----------------
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	log := logger.Logger()
	defer log.Sync()

	fs := flag.NewFlagSet("teamhub-cli", flag.ExitOnError)
	apiURL := fs.String("api", cfg.APIBaseURL, "URL base da API")
	timeout := fs.Duration("timeout", 10*time.Second, "timeout por chamada")
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := dashboardHttp.NewEmployeeAPIClient(*apiURL, nil, log)
	store := dashboardApp.NewStore()
	cli := &app{
		actions: dashboardApp.NewEmployeeActions(client, store, log),
		store:   store,
		out:     os.Stdout,
		now:     time.Now,
		timeout: *timeout,
	}

	if err := cli.run(ctx, fs.Args()); err != nil {
		log.Error("❌ Comando falhou", zap.Error(err))
		_ = log.Sync()
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
		os.Exit(1)
	}
}
