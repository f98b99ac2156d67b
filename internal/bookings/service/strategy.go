package service

import (
	"context"
	"fmt"
	"strings"

	mongotx "courtbook/pkg/db/mongo"
)

// Strategy is the check-and-reserve protocol used for every reservation. It is
// fixed when the service is built and never changes per request.
type Strategy uint8

const (
	// StrategyTransaction re-checks and inserts inside one store transaction.
	StrategyTransaction Strategy = iota + 1
	// StrategyLease serializes on a ledger lease keyed by court and start.
	StrategyLease
)

const strategyAuto = "auto"

func (s Strategy) String() string {
	switch s {
	case StrategyTransaction:
		return "transaction"
	case StrategyLease:
		return "lease"
	default:
		return "unknown"
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "transaction":
		return StrategyTransaction, nil
	case "lease":
		return StrategyLease, nil
	default:
		return 0, fmt.Errorf("unknown reservation strategy %q", name)
	}
}

// TopologyProbe describes the backing deployment.
type TopologyProbe func(ctx context.Context) (mongotx.Topology, error)

// ResolveStrategy turns the configured name into a Strategy. "auto" asks probe
// once: deployments that accept transactions get StrategyTransaction, the rest
// StrategyLease.
func ResolveStrategy(ctx context.Context, name string, probe TopologyProbe) (Strategy, error) {
	if !strings.EqualFold(strings.TrimSpace(name), strategyAuto) {
		return ParseStrategy(name)
	}

	topology, err := probe(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to probe deployment topology: %w", err)
	}
	if topology.SupportsTransactions() {
		return StrategyTransaction, nil
	}
	return StrategyLease, nil
}
