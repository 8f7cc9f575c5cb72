package aco

// DepositPolicy computes the pheromone an ant lays on edge from→to right after
// choosing it. pathSoFar holds the path up to and including from; it must not
// be retained or modified.
type DepositPolicy func(g *Graph, from, to int, pathSoFar []int) (float64, error)

// EdgeGradeDeposit is the default local policy: each traversed edge receives
// its heuristic value 1/distance, independent of the eventual tour length.
func EdgeGradeDeposit(g *Graph, from, to int, _ []int) (float64, error) {
	return g.EdgeGrade(from, to)
}

// ConstantDeposit lays the same amount q on every traversed edge.
func ConstantDeposit(q float64) DepositPolicy {
	return func(_ *Graph, _, _ int, _ []int) (float64, error) {
		return q, nil
	}
}

// DepositSink receives edge-level deposits while an ant walks.
// *PheromoneMatrix is the sequential sink.
type DepositSink interface {
	AddPending(i, j int, delta float64) error
}

var _ DepositSink = (*PheromoneMatrix)(nil)

type deposit struct {
	from, to int
	delta    float64
}

// depositLog buffers one ant's deposits so that concurrent ants never touch
// the shared pending matrix. Entries are replayed in insertion order.
type depositLog struct {
	entries []deposit
}

func (l *depositLog) AddPending(i, j int, delta float64) error {
	if err := validateAmount(delta); err != nil {
		return err
	}
	l.entries = append(l.entries, deposit{from: i, to: j, delta: delta})

	return nil
}

func (l *depositLog) reset() { l.entries = l.entries[:0] }

// replay forwards buffered deposits to sink in their original order.
func (l *depositLog) replay(sink DepositSink) error {
	for _, d := range l.entries {
		if err := sink.AddPending(d.from, d.to, d.delta); err != nil {
			return err
		}
	}

	return nil
}
