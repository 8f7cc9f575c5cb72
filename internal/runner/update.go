package runner

import (
	"fmt"

	"github.com/katalvlaran/antroute/aco"
)

// Point locates a vertex to remove: the nearest one within Radius.
type Point struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Update is a batch of configuration changes. Nil fields are left alone.
// Fields are applied in declaration order; the first failure stops the batch
// and earlier fields stay applied.
type Update struct {
	Alpha           *float64     `json:"alpha,omitempty"`
	Beta            *float64     `json:"beta,omitempty"`
	EvaporationRate *float64     `json:"evaporation_rate,omitempty"`
	Ants            *int         `json:"ants,omitempty"`
	Workers         *int         `json:"workers,omitempty"`
	Vertices        []aco.Vertex `json:"vertices,omitempty"`
	AddVertex       *aco.Vertex  `json:"add_vertex,omitempty"`
	RemoveNearest   *Point       `json:"remove_nearest,omitempty"`
	Reset           bool         `json:"reset,omitempty"`
}

// Result reports side effects of an Update.
type Result struct {
	// Removed is the former index of the vertex removed by RemoveNearest,
	// or -1 when none was close enough.
	Removed int `json:"removed"`
	// Rebuilt is true when the champion and pheromones were reset.
	Rebuilt bool `json:"rebuilt"`
}

func (u Update) apply(e *aco.Engine) (Result, error) {
	res := Result{Removed: -1}
	if u.Alpha != nil {
		if err := e.SetAlpha(*u.Alpha); err != nil {
			return res, err
		}
	}
	if u.Beta != nil {
		if err := e.SetBeta(*u.Beta); err != nil {
			return res, err
		}
	}
	if u.EvaporationRate != nil {
		if err := e.SetEvaporationRate(*u.EvaporationRate); err != nil {
			return res, err
		}
	}
	if u.Ants != nil {
		if err := e.SetNumAnts(*u.Ants); err != nil {
			return res, err
		}
	}
	if u.Workers != nil {
		if err := e.SetWorkers(*u.Workers); err != nil {
			return res, err
		}
	}
	if u.Vertices != nil {
		if err := e.SetVertices(u.Vertices); err != nil {
			return res, err
		}
		res.Rebuilt = true
	}
	if u.AddVertex != nil {
		if err := e.AddVertex(*u.AddVertex); err != nil {
			return res, err
		}
		res.Rebuilt = true
	}
	if p := u.RemoveNearest; p != nil {
		i, err := e.RemoveNearestVertex(p.X, p.Y, p.Radius)
		if err != nil {
			return res, err
		}
		res.Removed = i
		res.Rebuilt = res.Rebuilt || i >= 0
	}
	if u.Reset {
		if err := e.Reset(); err != nil {
			return res, err
		}
		res.Rebuilt = true
	}

	return res, nil
}

// Submit applies u between iterations: it waits for a running iteration to
// finish and holds the loop off until the batch is applied.
func (r *Runner) Submit(u Update) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := u.apply(r.engine)
	if res.Rebuilt {
		r.stagnant = 0
		r.hasStats = false
	}
	r.publishSize()
	if err != nil {
		r.log.Warn("update rejected", "error", err)
		return res, fmt.Errorf("update: %w", err)
	}
	r.log.Info("update applied",
		"rebuilt", res.Rebuilt,
		"vertices", r.engine.Graph().NumVertices(),
		"ants", r.engine.Options().NumAnts,
	)

	return res, nil
}
