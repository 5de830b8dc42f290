package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelperKeyNames(t *testing.T) {
	require.Equal(t, KeyRunID, RunID("r1").Key)
	require.Equal(t, "r1", RunID("r1").Value.String())
	require.Equal(t, KeyFile, File("a.md").Key)
	require.Equal(t, KeyUID, UID("X").Key)
	require.Equal(t, KeyTarget, Target("api.md").Key)
	require.Equal(t, int64(3), Documents(3).Value.Int64())
}

func TestErrorAttr(t *testing.T) {
	require.Equal(t, "", Error(nil).Value.String())
	require.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
