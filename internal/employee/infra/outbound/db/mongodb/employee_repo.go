package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davicafu/teamhub/internal/employee/domain"
)

const collectionName = "employees"

// EmployeeRepoMongoDB implementa domain.EmployeeRepository sobre la colección "employees".
type EmployeeRepoMongoDB struct {
	conn *Mongo
}

var _ domain.EmployeeRepository = (*EmployeeRepoMongoDB)(nil)

func NewEmployeeRepoMongoDB(conn *Mongo) *EmployeeRepoMongoDB {
	return &EmployeeRepoMongoDB{conn: conn}
}

// --- Structs de BSON para el mapeo ---
// Se definen localmente para no "contaminar" el dominio con tags de BSON.

type mongoEmployee struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Nome            string             `bson:"nome"`
	DataNascimento  string             `bson:"dataNascimento"`
	CPF             string             `bson:"cpf"`
	RG              string             `bson:"rg"`
	Email           string             `bson:"email"`
	DataContratacao string             `bson:"dataContratacao"`
	Sexo            string             `bson:"sexo"`
	Cargo           string             `bson:"cargo"`
	Departamento    string             `bson:"departamento"`
	Ativo           bool               `bson:"ativo"`
}

func (r *EmployeeRepoMongoDB) collection() (*mongo.Collection, error) {
	db, err := r.conn.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionName), nil
}

// --- Lectura ---

func (r *EmployeeRepoMongoDB) ListAll(ctx context.Context) ([]*domain.Employee, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	employees := make([]*domain.Employee, 0)
	for cursor.Next(ctx) {
		var me mongoEmployee
		if err := cursor.Decode(&me); err != nil {
			return nil, err
		}
		employees = append(employees, fromMongoEmployee(&me))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// --- Escritura ---

func (r *EmployeeRepoMongoDB) Insert(ctx context.Context, e domain.NewEmployee) (domain.InsertResult, error) {
	coll, err := r.collection()
	if err != nil {
		return domain.InsertResult{}, err
	}

	res, err := coll.InsertOne(ctx, toMongoEmployee(e))
	if err != nil {
		return domain.InsertResult{}, err
	}

	id := ""
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		id = oid.Hex()
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *EmployeeRepoMongoDB) DeleteByID(ctx context.Context, id string) (*domain.Employee, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// un id que no es ObjectID no puede existir en la colección
		return nil, domain.ErrEmployeeNotFound
	}

	var me mongoEmployee
	if err := coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return fromMongoEmployee(&me), nil
}

func (r *EmployeeRepoMongoDB) UpdateByID(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	var (
		me     mongoEmployee
		filter = bson.M{"_id": oid}
	)
	if patch.IsEmpty() {
		// $set vacío es rechazado por el servidor; se devuelve el documento actual
		err = coll.FindOne(ctx, filter).Decode(&me)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": patchToSet(patch)}, opts).Decode(&me)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return fromMongoEmployee(&me), nil
}

// --- Helpers de Mapeo y Conversión ---

func patchToSet(patch domain.EmployeePatch) bson.D {
	set := bson.D{}
	for _, f := range patch.Fields() {
		set = append(set, bson.E{Key: f.Field, Value: f.Value})
	}
	return set
}

func toMongoEmployee(e domain.NewEmployee) *mongoEmployee {
	return &mongoEmployee{
		Nome: e.Nome, DataNascimento: e.DataNascimento, CPF: e.CPF, RG: e.RG, Email: e.Email,
		DataContratacao: e.DataContratacao, Sexo: string(e.Sexo), Cargo: e.Cargo,
		Departamento: e.Departamento, Ativo: e.Ativo,
	}
}

func fromMongoEmployee(me *mongoEmployee) *domain.Employee {
	return &domain.Employee{
		ID: me.ID.Hex(), Nome: me.Nome, DataNascimento: me.DataNascimento, CPF: me.CPF, RG: me.RG,
		Email: me.Email, DataContratacao: me.DataContratacao, Sexo: domain.Sexo(me.Sexo),
		Cargo: me.Cargo, Departamento: me.Departamento, Ativo: me.Ativo,
	}
}
