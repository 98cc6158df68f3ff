// Package vectorutils is the vector store utility package
package vectorutils

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/vector"
	"github.com/callscopeco/callscope/pkg/vector/memvec"
	"github.com/callscopeco/callscope/pkg/vector/pgvector"
	"github.com/callscopeco/callscope/pkg/vector/sqlitevec"
)

type NewVectorDriverOpts struct {
	ProviderType string
	Target       string
	Dimensions   uint
	Logger       *zap.Logger
}

// NewVectorDriver constructs the configured vector store driver.
// Target is a connection string for "pgvector", a database path for
// "sqlite", and ignored for "memory".
func NewVectorDriver(ctx context.Context, o *NewVectorDriverOpts) (vector.Driver, error) {
	switch o.ProviderType {
	case "pgvector":
		return pgvector.NewPgVectorDriver(ctx, pgvector.Config{
			ConnStr:    o.Target,
			Dimensions: o.Dimensions,
		}, o.Logger)
	case "sqlite":
		return sqlitevec.NewSQLiteVecDriver(sqlitevec.Config{
			DBPath:     o.Target,
			Dimensions: o.Dimensions,
		}, o.Logger)
	case "memory":
		return memvec.NewMemVecDriver(memvec.Config{
			Dimensions: o.Dimensions,
		}, o.Logger)
	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}
