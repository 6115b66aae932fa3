package pqueue

import "sync/atomic"

// Metrics groups the contention counters the queue maintains for benchmark
// and diagnostic use: insert splice contention plus two counters specific
// to this protocol's batched deletion — lost fetch-or races in DeleteMin
// and successful head-advancement sweeps in restructure.
type Metrics struct {
	insertCASRetries    atomic.Int64
	insertCASSuccesses  atomic.Int64
	deleteMinRetries    atomic.Int64
	restructureAdvances atomic.Int64
	length              atomic.Int64
}

func newMetrics() *Metrics { return &Metrics{} }

func (m *Metrics) IncInsertCASRetry()    { m.insertCASRetries.Add(1) }
func (m *Metrics) IncInsertCASSuccess()  { m.insertCASSuccesses.Add(1) }
func (m *Metrics) IncDeleteMinRetry()    { m.deleteMinRetries.Add(1) }
func (m *Metrics) IncRestructureAdvance() { m.restructureAdvances.Add(1) }
func (m *Metrics) AddLen(delta int64)    { m.length.Add(delta) }
func (m *Metrics) Len() int64            { return m.length.Load() }

// Stats is a point-in-time snapshot of every counter, returned by
// PQueue.Stats for benchmarks and contention analysis.
type Stats struct {
	InsertCASRetries    int64
	InsertCASSuccesses  int64
	DeleteMinRetries    int64
	RestructureAdvances int64
	Len                 int64
}

func (m *Metrics) snapshot() Stats {
	return Stats{
		InsertCASRetries:    m.insertCASRetries.Load(),
		InsertCASSuccesses:  m.insertCASSuccesses.Load(),
		DeleteMinRetries:    m.deleteMinRetries.Load(),
		RestructureAdvances: m.restructureAdvances.Load(),
		Len:                 m.length.Load(),
	}
}
