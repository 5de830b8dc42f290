package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	mderrors "github.com/inful/mdgraph/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "input: ./docs\noutput: ./site\n"))
	require.NoError(t, err)
	require.Equal(t, "./docs", cfg.Input)
	require.Equal(t, "info", cfg.Logging.Level)
	require.False(t, cfg.Placeholder.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.True(t, mderrors.IsCategory(err, mderrors.CategoryConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "input: [unclosed"))
	require.Error(t, err)
	require.True(t, mderrors.IsCategory(err, mderrors.CategoryConfig))

	var te *mderrors.TransformError
	require.ErrorAs(t, err, &te)
	require.Equal(t, mderrors.SeverityFatal, te.Severity)
}

func TestValidateRequiresInput(t *testing.T) {
	_, err := Load(writeConfig(t, "input: \"\"\noutput: ./site\n"))
	require.Error(t, err)
	require.True(t, mderrors.IsCategory(err, mderrors.CategoryConfig))
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	_, err := Load(writeConfig(t, "input: ./a\noutput: ./b\nlogging:\n  level: loud\n"))
	require.Error(t, err)
}

func TestValidatePlaceholderNeedsContent(t *testing.T) {
	_, err := Load(writeConfig(t, "input: ./a\noutput: ./b\nplaceholder:\n  enabled: true\n"))
	require.Error(t, err)

	cfg, err := Load(writeConfig(t, "input: ./a\noutput: ./b\nplaceholder:\n  enabled: true\n  content: '<p>x</p>'\n"))
	require.NoError(t, err)
	require.Equal(t, "<p>x</p>", cfg.Placeholder.Content)
}
