package aco_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/antroute/aco"
)

func TestValidateTour(t *testing.T) {
	tests := []struct {
		name string
		path []int
		n    int
		want error
	}{
		{"ok", []int{2, 0, 1, 2}, 3, nil},
		{"single", []int{0, 0}, 1, nil},
		{"empty set", []int{}, 0, aco.ErrNoVertices},
		{"short", []int{0, 1, 0}, 3, aco.ErrInvalidTour},
		{"open", []int{0, 1, 2, 1}, 3, aco.ErrInvalidTour},
		{"repeat", []int{0, 1, 1, 0}, 3, aco.ErrInvalidTour},
		{"range", []int{0, 1, 3, 0}, 3, aco.ErrVertexOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := aco.ValidateTour(tc.path, tc.n)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTour_CloneAndString(t *testing.T) {
	orig := aco.Tour{Path: []int{0, 2, 1, 0}, Length: 12.5}
	cp := orig.Clone()
	cp.Path[1] = 9

	assert.Equal(t, 2, orig.Path[1])
	assert.Equal(t, 0, orig.Start())
	assert.Equal(t, -1, aco.Tour{}.Start())
	assert.Equal(t, "0→2→1→0 (12.5)", orig.String())
	assert.Nil(t, aco.CopyPath(nil))
}
