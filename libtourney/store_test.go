package libtourney

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/tourney/tourney"
)

func TestNewStore_ValidatesTournaments(t *testing.T) {
	good := Transitive(3)

	// Pair (0,2) oriented both ways.
	bad := Transitive(3)
	bad.sign[2*3+0] = 1

	_, err := NewStore(3, []*Tournament{good, bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tourney.ErrNotTournament))
	assert.Contains(t, err.Error(), "tournament 1")

	_, err = NewStore(4, []*Tournament{good})
	assert.True(t, errors.Is(err, tourney.ErrBadOrder))

	store, err := NewStore(3, []*Tournament{good})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}
