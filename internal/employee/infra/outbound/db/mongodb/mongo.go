package mongodb

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/davicafu/teamhub/internal/employee/domain"
)

// Mongo guarda la conexión compartida. Los repos la consultan en cada operación,
// así que pueden crearse antes de conectar.
type Mongo struct {
	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

func NewMongo() *Mongo {
	return &Mongo{}
}

// NewMongoFromDatabase envuelve una base ya abierta (útil en tests con mtest).
func NewMongoFromDatabase(db *mongo.Database) *Mongo {
	return &Mongo{client: db.Client(), db: db}
}

// Connect abre el cliente y comprueba el primario. Si falla, la conexión anterior (si había) se mantiene.
func (m *Mongo) Connect(ctx context.Context, uri, dbName string) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("could not connect to mongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("could not ping mongoDB: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = client
	m.db = client.Database(dbName)
	return nil
}

// Database devuelve domain.ErrNotConnected mientras no haya conexión.
func (m *Mongo) Database() (*mongo.Database, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.db == nil {
		return nil, domain.ErrNotConnected
	}
	return m.db, nil
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client, m.db = nil, nil
	return err
}
