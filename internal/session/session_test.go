package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/restviz/internal/config"
	helpers "git.home.luguber.info/inful/restviz/internal/testutil/testutils"
)

func testConfig(t *testing.T, base string) *config.Config {
	t.Helper()
	cfg := &config.Config{Project: config.ProjectConfig{
		BaseDir:    base,
		Properties: map[string]string{"profile": "ci"},
	}}
	require.NoError(t, config.ApplyDefaults(cfg))
	return cfg
}

func TestNew_WithoutRepository(t *testing.T) {
	base := t.TempDir()
	s := New(testConfig(t, base))

	assert.NotEmpty(t, s.ID)
	assert.False(t, s.StartTime.IsZero())
	assert.Equal(t, base, s.Project.BaseDir)
	assert.Equal(t, filepath.Join(base, "target"), s.Project.BuildDir)
	assert.Nil(t, s.Revision)

	v, ok := s.Property("profile")
	assert.True(t, ok)
	assert.Equal(t, "ci", v)
}

func TestNew_DetectsRevision(t *testing.T) {
	_, wt, base := helpers.SetupProjectRepo(t)
	commit := helpers.CommitFile(t, wt, "pom.xml", "<project/>")

	s := New(testConfig(t, base))
	require.NotNil(t, s.Revision)
	assert.Equal(t, commit, s.Revision.Commit)
	assert.Equal(t, "master", s.Revision.Branch)
	assert.False(t, s.Revision.Dirty)
}

func TestDetectRevision_DirtyFromSubdirectory(t *testing.T) {
	_, wt, base := helpers.SetupProjectRepo(t)
	helpers.CommitFile(t, wt, "pom.xml", "<project/>")
	sub := filepath.Join(base, "module")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "new.txt"), []byte("x"), 0o600))

	rev, err := DetectRevision(sub)
	require.NoError(t, err)
	assert.True(t, rev.Dirty)
}

func TestSnapshot_IsIndependent(t *testing.T) {
	s := New(testConfig(t, t.TempDir()))
	s.Revision = &Revision{Commit: "abc"}

	snap := s.Snapshot()
	snap.Project.Properties["profile"] = "changed"
	snap.Project.SourceDirs[0] = "changed"
	snap.Revision.Commit = "changed"

	assert.Equal(t, "ci", s.Project.Properties["profile"])
	assert.NotEqual(t, "changed", s.Project.SourceDirs[0])
	assert.Equal(t, "abc", s.Revision.Commit)
}
