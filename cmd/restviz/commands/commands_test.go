package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/restviz/internal/config"
	rverrors "git.home.luguber.info/inful/restviz/internal/errors"
	"git.home.luguber.info/inful/restviz/internal/extractor"
	"git.home.luguber.info/inful/restviz/internal/session"
)

// fakeExtractor records the configurations the extract goal hands over.
type fakeExtractor struct {
	mu      sync.Mutex
	configs []extractor.Config
	err     error
}

func (f *fakeExtractor) runtime() *extractor.Runtime {
	rt := extractor.NewRuntime()
	rt.Define(extractor.DefaultNamespace, func(context.Context) (*extractor.Namespace, error) {
		return extractor.NewNamespace(extractor.DefaultNamespace).Define(extractor.DefaultEntryPoint,
			extractor.EntryPointFunc(func(_ context.Context, _ *session.Session, _ *slog.Logger, cfg extractor.Config) error {
				f.mu.Lock()
				defer f.mu.Unlock()
				f.configs = append(f.configs, cfg)
				return f.err
			})), nil
	})
	return rt
}

type testEnv struct {
	dir    string
	root   *CLI
	global *Global
	out    *bytes.Buffer
	fake   *fakeExtractor
}

func newTestEnv(t *testing.T, projectFile string) *testEnv {
	t.Helper()
	for _, key := range []string{config.EnvTargetDirectory, config.EnvDataTargetName, config.EnvPrettyPrint, config.EnvExtractor} {
		t.Setenv(key, "")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	cfgPath := filepath.Join(dir, config.DefaultConfigFile)
	if projectFile != "" {
		content := strings.ReplaceAll(projectFile, "{{dir}}", dir)
		require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	}

	out := &bytes.Buffer{}
	fake := &fakeExtractor{}
	return &testEnv{
		dir:  dir,
		root: &CLI{Config: cfgPath},
		global: &Global{
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
			Stdout:   out,
			Resolver: fake.runtime(),
		},
		out:  out,
		fake: fake,
	}
}

func boolPtr(b bool) *bool { return &b }

func TestExtractCmd_DefaultsFromProjectLayout(t *testing.T) {
	env := newTestEnv(t, "project:\n  base_directory: {{dir}}\n")

	require.NoError(t, (&ExtractCmd{}).Run(context.Background(), env.global, env.root))

	require.Len(t, env.fake.configs, 1)
	assert.Equal(t, extractor.Config{
		TargetDirectory: filepath.Join(env.dir, "target", "rest-viz-assets"),
		DataTargetName:  "graph-data.edn",
		PrettyPrint:     false,
	}, env.fake.configs[0])
}

func TestExtractCmd_Precedence(t *testing.T) {
	env := newTestEnv(t, `project:
  base_directory: {{dir}}
extract:
  target_directory: from-file
  data_target_name: file.edn
  pretty_print: true
`)
	t.Setenv(config.EnvDataTargetName, "env.edn")

	flagDir := filepath.Join(env.dir, "flag-out")
	cmd := &ExtractCmd{ExtractFlags: ExtractFlags{
		TargetDirectory: flagDir,
		PrettyPrint:     boolPtr(false),
	}}
	require.NoError(t, cmd.Run(context.Background(), env.global, env.root))

	require.Len(t, env.fake.configs, 1)
	assert.Equal(t, extractor.Config{
		TargetDirectory: flagDir,
		DataTargetName:  "env.edn",
		PrettyPrint:     false,
	}, env.fake.configs[0])
}

func TestExtractCmd_FailureIsGoalError(t *testing.T) {
	env := newTestEnv(t, "project:\n  base_directory: {{dir}}\n")
	env.fake.err = errors.New("no resources found")

	err := (&ExtractCmd{}).Run(context.Background(), env.global, env.root)
	require.Error(t, err)

	adapter := rverrors.NewCLIErrorAdapter(false, env.global.Logger)
	assert.Equal(t, 13, adapter.ExitCodeFor(err))
	assert.Equal(t, "goal: no resources found", adapter.FormatError(err))
}

func TestExtractCmd_MissingExplicitProjectFile(t *testing.T) {
	env := newTestEnv(t, "")

	err := (&ExtractCmd{}).Run(context.Background(), env.global, env.root)
	require.Error(t, err)
	assert.True(t, rverrors.IsCategory(err, rverrors.CategoryConfig))
	assert.Empty(t, env.fake.configs)
}

func TestExtractCmd_RelativeTargetDirectoryFlag(t *testing.T) {
	env := newTestEnv(t, "project:\n  base_directory: {{dir}}\n")

	cmd := &ExtractCmd{ExtractFlags: ExtractFlags{TargetDirectory: filepath.Join("out", "viz")}}
	require.NoError(t, cmd.Run(context.Background(), env.global, env.root))

	require.Len(t, env.fake.configs, 1)
	assert.Equal(t, filepath.Join(env.dir, "out", "viz"), env.fake.configs[0].TargetDirectory)
}

func TestExtractCmd_InvalidProjectFile(t *testing.T) {
	env := newTestEnv(t, "project: [unclosed\n")

	err := (&ExtractCmd{}).Run(context.Background(), env.global, env.root)
	require.Error(t, err)
	assert.True(t, rverrors.IsCategory(err, rverrors.CategoryConfig))
	assert.Empty(t, env.fake.configs)
}

func TestRunCmd_RunsUpToPhase(t *testing.T) {
	env := newTestEnv(t, "project:\n  base_directory: {{dir}}\n")

	require.NoError(t, (&RunCmd{Phase: "process-sources"}).Run(context.Background(), env.global, env.root))
	assert.Empty(t, env.fake.configs, "extract is bound to a later phase")

	require.NoError(t, (&RunCmd{Phase: "package"}).Run(context.Background(), env.global, env.root))
	assert.Len(t, env.fake.configs, 1)
}

func TestRunCmd_UnknownPhase(t *testing.T) {
	env := newTestEnv(t, "")

	err := (&RunCmd{Phase: "deploy"}).Run(context.Background(), env.global, env.root)
	require.Error(t, err)
	assert.True(t, rverrors.IsCategory(err, rverrors.CategoryValidation))
}

func TestGoalsCmd_ListsRegistrationTable(t *testing.T) {
	env := newTestEnv(t, "project:\n  base_directory: {{dir}}\n")

	require.NoError(t, (&GoalsCmd{}).Run(env.global, env.root))

	lines := strings.Split(strings.TrimSpace(env.out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "GOAL")
	fields := strings.Fields(lines[1])
	assert.Equal(t, []string{"extract", "generate-resources", "true", "compile+runtime"}, fields[:4])
}

func TestInitCmd(t *testing.T) {
	env := newTestEnv(t, "")

	require.NoError(t, (&InitCmd{}).Run(env.global, env.root))
	assert.Contains(t, env.out.String(), "initialized successfully")

	cfg, err := config.Load(env.root.Config)
	require.NoError(t, err)
	assert.Equal(t, "graph-data.edn", cfg.Extract.DataTargetName)

	err = (&InitCmd{}).Run(env.global, env.root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, (&InitCmd{Force: true}).Run(env.global, env.root))
}

func TestWatchPaths(t *testing.T) {
	env := newTestEnv(t, `project:
  base_directory: {{dir}}
  source_directories: [src/main/java, /abs/resources]
`)
	p, err := OpenProject(env.global, env.root, ExtractFlags{})
	require.NoError(t, err)

	paths, ignore := watchPaths(p)
	assert.Equal(t, []string{filepath.Join(env.dir, "src", "main", "java"), "/abs/resources"}, paths)
	assert.Equal(t, []string{
		filepath.Join(env.dir, "target"),
		filepath.Join(env.dir, "target", "rest-viz-assets"),
	}, ignore)
}

func TestOpenProject_MetricsTextfile(t *testing.T) {
	env := newTestEnv(t, `project:
  base_directory: {{dir}}
metrics:
  textfile: {{dir}}/metrics/restviz.prom
`)
	require.NoError(t, (&ExtractCmd{}).Run(context.Background(), env.global, env.root))

	data, err := os.ReadFile(filepath.Join(env.dir, "metrics", "restviz.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `restviz_goal_outcomes_total{goal="extract",outcome="success"} 1`)
}

func TestExtractFlags_Apply(t *testing.T) {
	cfg := &config.Config{Extract: config.ExtractConfig{
		TargetDirectory: "/file",
		DataTargetName:  "file.edn",
		PrettyPrint:     true,
	}}

	ExtractFlags{}.Apply(cfg)
	assert.Equal(t, config.ExtractConfig{TargetDirectory: "/file", DataTargetName: "file.edn", PrettyPrint: true}, cfg.Extract)

	ExtractFlags{TargetDirectory: "/flag", DataTargetName: "flag.edn", PrettyPrint: boolPtr(false)}.Apply(cfg)
	assert.Equal(t, config.ExtractConfig{TargetDirectory: "/flag", DataTargetName: "flag.edn", PrettyPrint: false}, cfg.Extract)

	cfg.Project.BaseDir = "/srv/orders"
	ExtractFlags{TargetDirectory: "viz"}.Apply(cfg)
	assert.Equal(t, "/srv/orders/viz", cfg.Extract.TargetDirectory)
}
