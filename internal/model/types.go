// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/dahdit/internal/morse"
)

// Operation names recorded in the conversion history.
const (
	OpEncode   = "encode"
	OpDecode   = "decode"
	OpSwitch   = "switch"
	OpRepair   = "repair"
	OpValidate = "validate"
	OpGarble   = "garble"
)

// Config defines resolved converter settings.
type Config struct {
	Format      morse.Format
	RepairMode  morse.RepairMode
	RepairOrder morse.RepairOrder
	History     bool
}

// Conversion records one conversion run.
type Conversion struct {
	ID        int64
	CreatedAt time.Time
	Op        string
	Format    string
	Target    string
	Mode      string
	Source    string
	Input     string
	Output    string
	Tokens    int
	Repaired  int
	Dropped   int
}

// HistoryFilter defines filters for history output.
type HistoryFilter struct {
	Op    string
	Since *time.Time
	Last  int
}

// OpAggregate summarizes conversions of one operation.
type OpAggregate struct {
	Op       string
	Count    int
	Tokens   int
	Repaired int
	Dropped  int
	InChars  int
	OutChars int
}
