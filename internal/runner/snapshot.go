package runner

import "github.com/katalvlaran/antroute/aco"

// Snapshot is a read-only copy of the reporting surface.
type Snapshot struct {
	Iteration  int          `json:"iteration"`
	Phase      string       `json:"phase"`
	Stagnation int          `json:"stagnation"`
	Stats      *aco.Stats   `json:"stats,omitempty"`
	Best       *aco.Tour    `json:"best,omitempty"`
	Vertices   []aco.Vertex `json:"vertices"`
	Paths      []aco.Tour   `json:"paths"`
	Options    aco.Options  `json:"options"`
}

// Snapshot copies the engine state under a read lock.
func (r *Runner) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g := r.engine.Graph()
	s := Snapshot{
		Iteration:  r.engine.Iteration(),
		Phase:      r.engine.Phase().String(),
		Stagnation: r.stagnant,
		Vertices:   g.Vertices(),
		Paths:      g.LastIterationPaths(),
		Options:    r.engine.Options(),
	}
	if r.hasStats {
		st := r.last
		s.Stats = &st
	}
	if best, ok := r.engine.Best(); ok {
		s.Best = &best
	}

	return s
}
