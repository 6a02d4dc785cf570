package db

import (
	"context"

	"github.com/TFMV/bigocode/types"
)

// DB persists classification records.
type DB interface {
	Initialize(ctx context.Context) error
	StoreAnalysis(ctx context.Context, report types.ScanReport) error
}
