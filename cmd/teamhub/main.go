package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/davicafu/teamhub/internal/config"
	employeeApp "github.com/davicafu/teamhub/internal/employee/application"
	employeeDomain "github.com/davicafu/teamhub/internal/employee/domain"
	employeeEvents "github.com/davicafu/teamhub/internal/employee/infra/inbound/events"
	employeeHttp "github.com/davicafu/teamhub/internal/employee/infra/inbound/http"
	"github.com/davicafu/teamhub/internal/employee/infra/outbound/analytics/clickhouse"
	"github.com/davicafu/teamhub/internal/employee/infra/outbound/db/memory"
	"github.com/davicafu/teamhub/internal/employee/infra/outbound/db/mongodb"
	"github.com/davicafu/teamhub/internal/employee/infra/outbound/db/postgres"
	"github.com/davicafu/teamhub/internal/employee/infra/outbound/db/sqlite"
	infraEvents "github.com/davicafu/teamhub/internal/shared/infra/events"
	sharedBus "github.com/davicafu/teamhub/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/teamhub/internal/shared/infra/platform/cache"
	"github.com/davicafu/teamhub/pkg/logger"
)

const consumerGroup = "teamhub-employee-analytics"

// ---------------- Main ----------------
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("info")
		logger.Logger().Fatal("❌ Configuración inválida", zap.Error(err))
	}

	logger.Init(cfg.LogLevel)
	log := logger.Logger()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- DB ----------------
	repo, closeRepo := openRepository(ctx, cfg, log)
	defer closeRepo()

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		rdb.Close()
		mem := sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
		defer mem.Stop()
		cacheInstance = mem
	} else {
		defer rdb.Close()
		cacheInstance = sharedCache.NewRedisCache(rdb)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ---------------- Analytics ----------------
	var analytics employeeDomain.EmployeeAnalytics
	if cfg.ClickHouseAddr != "" {
		chDB, err := clickhouse.Open(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, cambios sin registrar", zap.Error(err))
		} else {
			chRepo := clickhouse.NewEmployeeAnalyticsRepo(chDB)
			defer chRepo.Close()
			if err := chRepo.InitSchema(ctx); err != nil {
				log.Fatal("❌ No se pudo crear el esquema de ClickHouse", zap.Error(err))
			}
			analytics = chRepo
			log.Info("✅ ClickHouse conectado", zap.String("addr", cfg.ClickHouseAddr))
		}
	}
	consumer := employeeEvents.NewEmployeeConsumer(analytics, log)

	// ---------------- Events ---------------
	var publisher sharedBus.EventPublisher
	var consumerDone <-chan struct{}

	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.KafkaBrokers))

		writer := infraEvents.NewKafkaWriter(cfg.KafkaBrokers, employeeDomain.EmployeeTopic)
		defer writer.Close()
		publisher = infraEvents.NewKafkaPublisher(writer, log)

		reader := infraEvents.NewKafkaReader(cfg.KafkaBrokers, employeeDomain.EmployeeTopic, consumerGroup)
		defer reader.Close()
		consumerDone = infraEvents.NewConsumerAdapter(reader, consumer, log).Start(ctx)
	} else {
		bus := infraEvents.NewInMemoryEventBus(employeeDomain.EmployeeTopic)
		log.Info("⚡️ Usando bus de eventos en memoria", zap.String("topic", bus.Topic()))
		publisher = bus
		consumerDone = employeeEvents.BackgroundConsumerChan(ctx, bus.Subscribe(64), consumer)
	}

	// --------------- Servicio --------------
	service := employeeApp.NewEmployeeService(repo, cacheInstance, publisher, log,
		employeeApp.WithCacheTTL(cfg.CacheTTL))

	// ---------------- HTTP ----------------
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := employeeHttp.NewRouter(log, employeeHttp.NewEmployeeHandler(service))
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Apagando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown forzado", zap.Error(err))
	}

	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		log.Warn("⚠️ El consumidor de eventos no terminó a tiempo")
	}
	log.Info("👋 Servidor detenido")
}

// openRepository elige el almacenamiento según STORAGE_DRIVER. Si Mongo no conecta
// el servidor arranca igual y cada llamada responde 500.
func openRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (employeeDomain.EmployeeRepository, func()) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal("❌ failed to open SQLite", zap.Error(err))
		}
		log.Info("✅ SQLite listo", zap.String("path", cfg.SQLitePath))
		return sqlite.NewEmployeeRepoSQLite(db), func() { db.Close() }

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.PostgresURL, cfg.PostgresMaxConn)
		if err != nil {
			log.Fatal("❌ failed to connect to Postgres", zap.Error(err))
		}
		if err := postgres.InitSchema(ctx, pool); err != nil {
			pool.Close()
			log.Fatal("❌ failed to initialize Postgres", zap.Error(err))
		}
		log.Info("✅ Postgres conectado")
		return postgres.NewEmployeeRepoPostgres(pool), pool.Close

	case config.DriverMemory:
		log.Warn("⚠️ Almacenamiento en memoria, los datos se pierden al salir")
		return memory.NewEmployeeRepoMemory(), func() {}

	case config.DriverMongoDB:
		conn := mongodb.NewMongo()
		if err := conn.Connect(ctx, cfg.MongoURI, cfg.MongoDBName); err != nil {
			log.Error("❌ No se pudo conectar a MongoDB", zap.Error(err))
		} else {
			log.Info("✅ MongoDB conectado", zap.String("db", cfg.MongoDBName))
		}
		return mongodb.NewEmployeeRepoMongoDB(conn), func() {
			if err := conn.Disconnect(context.Background()); err != nil {
				log.Warn("⚠️ Error al desconectar MongoDB", zap.Error(err))
			}
		}

	default:
		log.Fatal("❌ STORAGE_DRIVER desconocido", zap.String("driver", cfg.StorageDriver))
		return nil, nil
	}
}
