package visit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookblog/server/internal/core/domain/visit"
)

func TestValidateURL_CountsCharactersNotBytes(t *testing.T) {
	require.NoError(t, visit.ValidateURL(strings.Repeat("é", visit.MaxURLLength)))
	require.ErrorIs(t, visit.ValidateURL(strings.Repeat("é", visit.MaxURLLength+1)), visit.ErrURLTooLong)
	require.ErrorIs(t, visit.ValidateURL(strings.Repeat("a", visit.MaxURLLength+1)), visit.ErrURLTooLong)
	require.ErrorIs(t, visit.ValidateURL(" \t"), visit.ErrURLRequired)
}
