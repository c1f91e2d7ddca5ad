package store

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fvieira/frota-csv/internal/logging"
	"fvieira/frota-csv/internal/models"
)

var log = logging.GetLogger()

// SetLogger sets the logger used by the store implementations.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Collection names kept from the legacy document layout so existing data
// stays readable.
const (
	machinesCollection  = "frotas"
	expensesCollection  = "lancamentos"
	materialsCollection = "materiais"
)

const connectTimeout = 10 * time.Second

// MongoStore implements Store on a MongoDB database.
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
}

// decimalType is registered with a string codec: monetary values are
// stored exactly as written, preserving the documents the legacy tooling
// produced.
var decimalType = reflect.TypeOf(decimal.Decimal{})

func decimalRegistry() *bsoncodec.Registry {
	registry := bson.NewRegistry()
	registry.RegisterTypeEncoder(decimalType, bsoncodec.ValueEncoderFunc(encodeDecimal))
	registry.RegisterTypeDecoder(decimalType, bsoncodec.ValueDecoderFunc(decodeDecimal))
	return registry
}

func encodeDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	return vw.WriteString(val.Interface().(decimal.Decimal).String())
}

func decodeDecimal(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	switch vr.Type() {
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("decoding decimal %q: %w", s, err)
		}
		val.Set(reflect.ValueOf(d))
		return nil
	case bsontype.Double:
		f, err := vr.ReadDouble()
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(decimal.NewFromFloat(f)))
		return nil
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
		val.Set(reflect.ValueOf(decimal.Zero))
		return nil
	default:
		return fmt.Errorf("cannot decode bson %s into a decimal", vr.Type())
	}
}

// ConnectMongo dials MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetRegistry(decimalRegistry()))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Info("Connected to MongoDB", logging.Field{Key: "database", Value: database})
	return &MongoStore{client: client, database: client.Database(database)}, nil
}

func (s *MongoStore) Machines() MachineStore {
	return &mongoMachines{coll: s.database.Collection(machinesCollection)}
}

func (s *MongoStore) Expenses() ExpenseStore {
	return &mongoExpenses{coll: s.database.Collection(expensesCollection)}
}

func (s *MongoStore) Materials() MaterialStore {
	return &mongoMaterials{coll: s.database.Collection(materialsCollection)}
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoMachines struct {
	coll *mongo.Collection
}

func (m *mongoMachines) List(ctx context.Context) ([]models.Machine, error) {
	cursor, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listing machines: %w", err)
	}
	var machines []models.Machine
	if err := cursor.All(ctx, &machines); err != nil {
		return nil, fmt.Errorf("decoding machines: %w", err)
	}
	return machines, nil
}

func (m *mongoMachines) Create(ctx context.Context, machine models.Machine) (string, error) {
	if machine.ID == "" {
		machine.ID = primitive.NewObjectID().Hex()
	}
	if _, err := m.coll.InsertOne(ctx, machine); err != nil {
		return "", fmt.Errorf("creating machine: %w", err)
	}
	return machine.ID, nil
}

func (m *mongoMachines) Update(ctx context.Context, machine models.Machine) error {
	if machine.ID == "" {
		return fmt.Errorf("updating machine: missing id")
	}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": machine.ID}, machine)
	if err != nil {
		return fmt.Errorf("updating machine: %w", err)
	}
	return nil
}

func (m *mongoMachines) Delete(ctx context.Context, id string) error {
	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting machine: %w", err)
	}
	return nil
}

func (m *mongoMachines) Watch(ctx context.Context) (<-chan struct{}, error) {
	return watchCollection(ctx, m.coll)
}

type mongoExpenses struct {
	coll *mongo.Collection
}

func (e *mongoExpenses) List(ctx context.Context) ([]models.Expense, error) {
	cursor, err := e.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	var expenses []models.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, fmt.Errorf("decoding expenses: %w", err)
	}
	return expenses, nil
}

func (e *mongoExpenses) Create(ctx context.Context, expense models.Expense) (string, error) {
	expense = stamp(expense)
	if _, err := e.coll.InsertOne(ctx, expense); err != nil {
		return "", fmt.Errorf("creating expense: %w", err)
	}
	return expense.ID, nil
}

func (e *mongoExpenses) CreateBatch(ctx context.Context, expenses []models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	docs := make([]interface{}, len(expenses))
	for i, exp := range expenses {
		docs[i] = stamp(exp)
	}
	if _, err := e.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("writing expense batch: %w", err)
	}
	return nil
}

func (e *mongoExpenses) Update(ctx context.Context, expense models.Expense) error {
	if expense.ID == "" {
		return fmt.Errorf("updating expense: missing id")
	}
	_, err := e.coll.ReplaceOne(ctx, bson.M{"_id": expense.ID}, expense)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	return nil
}

func (e *mongoExpenses) Delete(ctx context.Context, id string) error {
	_, err := e.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return nil
}

func (e *mongoExpenses) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := e.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("deleting expenses: %w", err)
	}
	return nil
}

func (e *mongoExpenses) DeleteAll(ctx context.Context) error {
	_, err := e.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("purging expenses: %w", err)
	}
	return nil
}

func (e *mongoExpenses) Watch(ctx context.Context) (<-chan struct{}, error) {
	return watchCollection(ctx, e.coll)
}

type mongoMaterials struct {
	coll *mongo.Collection
}

func (m *mongoMaterials) List(ctx context.Context) ([]models.MaterialCatalogEntry, error) {
	cursor, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	var entries []models.MaterialCatalogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decoding materials: %w", err)
	}
	return entries, nil
}

func (m *mongoMaterials) Upsert(ctx context.Context, entry models.MaterialCatalogEntry) error {
	update := bson.M{
		"$set": bson.M{
			"descricao": entry.Description,
			"categoria": entry.Category,
		},
		// The string id is assigned here, not by the server, so decoding
		// back into the model never meets an ObjectID.
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID().Hex()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := m.coll.UpdateOne(ctx, bson.M{"codigo": entry.Code}, update, opts)
	if err != nil {
		return fmt.Errorf("upserting material: %w", err)
	}
	return nil
}

func (m *mongoMaterials) BulkImport(ctx context.Context, entries []models.MaterialCatalogEntry) error {
	for _, entry := range entries {
		if err := m.Upsert(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// watchCollection turns a change stream into a signal channel. The stream
// closes when ctx ends.
func watchCollection(ctx context.Context, coll *mongo.Collection) (<-chan struct{}, error) {
	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", coll.Name(), err)
	}
	signals := make(chan struct{})
	go func() {
		defer close(signals)
		defer func() {
			if err := stream.Close(context.Background()); err != nil {
				log.WithError(err).Warn("Failed to close change stream")
			}
		}()
		for stream.Next(ctx) {
			select {
			case signals <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return signals, nil
}

func stamp(expense models.Expense) models.Expense {
	if expense.ID == "" {
		expense.ID = primitive.NewObjectID().Hex()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	return expense
}
