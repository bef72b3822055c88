package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avli/ply5d/coords"
)

func TestParseDecodesWirePieceOrderAndClearsInitialMoved(t *testing.T) {
	raw := []byte(`{
		"timelines": [{"index":0, "states":[[4,0,0,38]], "width":2, "height":2, "begins_at":0, "emerges_from":null}],
		"width":2, "height":2, "active_player":true,
		"initial_board_indices":[0]
	}`)

	g, err := Parse(raw)
	require.NoError(t, err)

	p, ok := g.Get(coords.New(0, 0, 0, 0)).Piece()
	require.True(t, ok)
	assert.Equal(t, coords.Rook, p.Kind)
	assert.True(t, p.White)
	assert.False(t, p.Moved)

	p2, ok := g.Get(coords.New(0, 0, 1, 1)).Piece()
	require.True(t, ok)
	assert.Equal(t, coords.King, p2.Kind)
	assert.False(t, p2.White)
	assert.False(t, p2.Moved)
}

func TestParseReconstructsMovedFlagAcrossBoards(t *testing.T) {
	raw := []byte(`{
		"timelines": [{"index":0, "states":[[4,0,0,0],[0,4,0,0]], "width":2, "height":2, "begins_at":0, "emerges_from":null}],
		"width":2, "height":2, "active_player":true,
		"initial_board_indices":[0]
	}`)

	g, err := Parse(raw)
	require.NoError(t, err)

	first, ok := g.Get(coords.New(0, 0, 0, 0)).Piece()
	require.True(t, ok)
	assert.False(t, first.Moved, "the initial board's pieces must be reset to unmoved")

	second, ok := g.Get(coords.New(0, 1, 1, 0)).Piece()
	require.True(t, ok)
	assert.True(t, second.Moved, "a square whose identity changed between T0 and T1 must be marked moved")
}

func TestParseRejectsDimensionMismatch(t *testing.T) {
	raw := []byte(`{
		"timelines": [{"index":0, "states":[[0,0,0]], "width":2, "height":2, "begins_at":0}],
		"width":2, "height":2, "active_player":true,
		"initial_board_indices":[]
	}`)

	_, err := Parse(raw)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrDimensionMismatch, perr.Kind)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrMalformed, perr.Kind)
}

func TestParseHalfIndexTimelineShiftsNegativeLayers(t *testing.T) {
	raw := []byte(`{
		"timelines": [
			{"index":0, "states":[[0,0,0,0]], "width":2, "height":2, "begins_at":0, "emerges_from":null},
			{"index":-0.5, "states":[[4,0,0,0]], "width":2, "height":2, "begins_at":0, "emerges_from":null}
		],
		"width":2, "height":2, "active_player":true,
		"initial_board_indices":[-0.5]
	}`)

	g, err := Parse(raw)
	require.NoError(t, err)

	p, ok := g.Get(coords.New(-1, 0, 0, 0)).Piece()
	require.True(t, ok, "timeline -0.5 must shift to L=-1 under even_timelines")
	assert.Equal(t, coords.Rook, p.Kind)
}
