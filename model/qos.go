package model

type QueueStats struct {
	TxPackets        uint64
	TxBytes          uint64
	TxDroppedPackets uint64
	TxDroppedBytes   uint64
	// ReadAndReset is set when the driver clears the counters on every read.
	ReadAndReset bool
}

type Scheduler int

const (
	SchedulerInvalid Scheduler = iota
	SchedulerSP
	SchedulerWRR
	SchedulerSPWRR
	SchedulerWFQ
)

type QueueConfig struct {
	Interface  string
	Scheduler  Scheduler
	Precedence int32
	Rate       int32
	BurstSize  int32
	Weight     int32
}
