package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/davicafu/teamhub/internal/employee/domain"
)

const ns = "teamhub.employees"

func employeeDoc(id primitive.ObjectID, nome string, ativo bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "nome", Value: nome},
		{Key: "dataNascimento", Value: "1990-03-15"},
		{Key: "cpf", Value: "123.456.789-00"},
		{Key: "rg", Value: "12.345.678-9"},
		{Key: "email", Value: "ana@teamhub.com"},
		{Key: "dataContratacao", Value: "2020-01-10"},
		{Key: "sexo", Value: "feminino"},
		{Key: "cargo", Value: "DevOps Pleno"},
		{Key: "departamento", Value: "Engenharia"},
		{Key: "ativo", Value: ativo},
	}
}

func TestEmployeeRepoMongoDB(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("ListAll decodifica todos los documentos", func(mt *mtest.T) {
		repo := NewEmployeeRepoMongoDB(NewMongoFromDatabase(mt.DB))
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()

		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, employeeDoc(id1, "Ana", true))
		next := mtest.CreateCursorResponse(0, ns, mtest.NextBatch, employeeDoc(id2, "Bruno", false))
		mt.AddMockResponses(first, next)

		list, err := repo.ListAll(ctx)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, id1.Hex(), list[0].ID)
		assert.Equal(mt, "Ana", list[0].Nome)
		assert.Equal(mt, domain.SexoFeminino, list[0].Sexo)
		assert.False(mt, list[1].Ativo)
	})

	mt.Run("ListAll vacío devuelve slice vacío", func(mt *mtest.T) {
		repo := NewEmployeeRepoMongoDB(NewMongoFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		list, err := repo.ListAll(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, list)
		assert.Empty(mt, list)
	})

	mt.Run("ListAll propaga el error del servidor", func(mt *mtest.T) {
		repo := NewEmployeeRepoMongoDB(NewMongoFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))

		_, err := repo.ListAll(ctx)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "not authorized")
	})

	mt.Run("Insert devuelve el ObjectID generado", func(mt *mtest.T) {
		repo := NewEmployeeRepoMongoDB(NewMongoFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		res, err := repo.Insert(ctx, domain.NewEmployee{Nome: "Ana", Sexo: domain.SexoFeminino})
		require.NoError(mt, err)
		assert.True(mt, res.Acknowledged)
		_, err = primitive.ObjectIDFromHex(res.InsertedID)
		assert.NoError(mt, err)

		sent := mt.GetStartedEvent()
		require.NotNil(mt, sent)
		assert.Equal(mt, "insert", sent.CommandName)
	})

	mt.Run("DeleteByID devuelve el documento eliminado", func(mt *mtest.T) {
		repo := NewEmployeeRepoMongoDB(NewMongoFromDatabase(mt.DB))
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: employeeDoc(id, "Ana", true)}))

		e, err := repo.DeleteByID(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), e.ID)
		assert.Equal(mt, "Ana", e.Nome)
	})

	mt.Run("DeleteByID sin documento es not found", func(mt *mtest.T) {
		repo := NewEmployeeRepoMongoDB(NewMongoFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.DeleteByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrEmployeeNotFound)
	})

	mt.Run("un id que no es ObjectID es not found", func(mt *mtest.T) {
		repo := NewEmployeeRepoMongoDB(NewMongoFromDatabase(mt.DB))

		_, err := repo.DeleteByID(ctx, "no-es-un-objectid")
		assert.ErrorIs(mt, err, domain.ErrEmployeeNotFound)

		_, err = repo.UpdateByID(ctx, "xyz", domain.EmployeePatch{})
		assert.ErrorIs(mt, err, domain.ErrEmployeeNotFound)
	})

	mt.Run("UpdateByID envía sólo los campos informados", func(mt *mtest.T) {
		repo := NewEmployeeRepoMongoDB(NewMongoFromDatabase(mt.DB))
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: employeeDoc(id, "Ana", false)}))

		ativo := false
		e, err := repo.UpdateByID(ctx, id.Hex(), domain.EmployeePatch{Ativo: &ativo})
		require.NoError(mt, err)
		assert.False(mt, e.Ativo)

		sent := mt.GetStartedEvent()
		require.NotNil(mt, sent)
		assert.Equal(mt, "findAndModify", sent.CommandName)
		set := sent.Command.Lookup("update", "$set").Document()
		elems, err := set.Elements()
		require.NoError(mt, err)
		require.Len(mt, elems, 1)
		assert.Equal(mt, "ativo", elems[0].Key())
		assert.True(mt, sent.Command.Lookup("new").Boolean())
	})

	mt.Run("UpdateByID sin documento es not found", func(mt *mtest.T) {
		repo := NewEmployeeRepoMongoDB(NewMongoFromDatabase(mt.DB))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		nome := "X"
		_, err := repo.UpdateByID(ctx, primitive.NewObjectID().Hex(), domain.EmployeePatch{Nome: &nome})
		assert.ErrorIs(mt, err, domain.ErrEmployeeNotFound)
	})
}

func TestEmployeeRepoMongoDB_NotConnected(t *testing.T) {
	repo := NewEmployeeRepoMongoDB(NewMongo())
	ctx := context.Background()

	_, err := repo.ListAll(ctx)
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	_, err = repo.Insert(ctx, domain.NewEmployee{})
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	_, err = repo.DeleteByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	_, err = repo.UpdateByID(ctx, primitive.NewObjectID().Hex(), domain.EmployeePatch{})
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestMongo_DisconnectWithoutClient(t *testing.T) {
	assert.NoError(t, NewMongo().Disconnect(context.Background()))
}
