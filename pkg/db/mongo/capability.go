package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Topology is the subset of the hello reply used to decide whether the
// deployment accepts multi-document transactions.
type Topology struct {
	SetName string `bson:"setName,omitempty"`
	Msg     string `bson:"msg,omitempty"`
}

// SupportsTransactions is true for replica set members and mongos routers.
// Standalone servers reject transactions.
func (t Topology) SupportsTransactions() bool {
	return t.SetName != "" || t.Msg == "isdbgrid"
}

func Describe(ctx context.Context, client *mongo.Client) (Topology, error) {
	var topology Topology
	err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&topology)
	if err != nil {
		return Topology{}, fmt.Errorf("failed to run hello: %w", err)
	}
	return topology, nil
}
