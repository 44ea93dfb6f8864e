package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const mongoStateCollection = "portal_state"

type MongoDB struct {
	client *mongo.Client
	state  *mongo.Collection

	// transactions is false on a standalone server.
	transactions bool
}

// helloReply holds the topology fields of the hello command.
type helloReply struct {
	SetName string `bson:"setName"`
	Msg     string `bson:"msg"`
}

// supportsTransactions reports whether the server is a replica set member
// or a mongos router, the topologies that accept multi-document transactions.
func (h helloReply) supportsTransactions() bool {
	return h.SetName != "" || h.Msg == "isdbgrid"
}

type mongoStateDoc struct {
	Key       string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewMongoDB(uri, database string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	var hello helloReply
	if err := db.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return nil, fmt.Errorf("hello mongodb: %w", err)
	}

	log.Printf("Connected to MongoDB: %s (transactions: %t)", database, hello.supportsTransactions())

	return &MongoDB{
		client:       client,
		state:        db.Collection(mongoStateCollection),
		transactions: hello.supportsTransactions(),
	}, nil
}

func (m *MongoDB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc mongoStateDoc
	err := m.state.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find %s: %w", key, err)
	}
	return doc.Payload, true, nil
}

func (m *MongoDB) Set(ctx context.Context, key string, value []byte) error {
	return m.replace(ctx, key, value)
}

// SetMany writes every key inside one multi-document transaction when the
// deployment supports it. A standalone server gets the replaces one by one
// in key order.
func (m *MongoDB) SetMany(ctx context.Context, values map[string][]byte) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if !m.transactions {
		for _, k := range keys {
			if err := m.replace(ctx, k, values[k]); err != nil {
				return fmt.Errorf("set many: %w", err)
			}
		}
		return nil
	}

	sess, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(txCtx context.Context) (any, error) {
		for _, k := range keys {
			if err := m.replace(txCtx, k, values[k]); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("set many: %w", err)
	}
	return nil
}

func (m *MongoDB) replace(ctx context.Context, key string, value []byte) error {
	doc := mongoStateDoc{Key: key, Payload: value, UpdatedAt: time.Now()}
	_, err := m.state.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (m *MongoDB) Delete(ctx context.Context, key string) error {
	if _, err := m.state.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) Driver() string { return DriverMongoDB }
