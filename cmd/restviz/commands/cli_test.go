package commands

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("restviz"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatalf("unexpected exit parsing %v", args) }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, kctx
}

func TestCLIParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		command string
		check   func(t *testing.T, cli *CLI)
	}{
		{
			name:    "extract defaults",
			args:    []string{"extract"},
			command: "extract",
			check: func(t *testing.T, cli *CLI) {
				assert.Empty(t, cli.Extract.TargetDirectory)
				assert.Empty(t, cli.Extract.DataTargetName)
				assert.Nil(t, cli.Extract.PrettyPrint)
				path, explicit := cli.ConfigPath()
				assert.Equal(t, "restviz.yaml", path)
				assert.False(t, explicit)
			},
		},
		{
			name:    "extract bare pretty-print",
			args:    []string{"extract", "--pretty-print"},
			command: "extract",
			check: func(t *testing.T, cli *CLI) {
				require.NotNil(t, cli.Extract.PrettyPrint)
				assert.True(t, *cli.Extract.PrettyPrint)
			},
		},
		{
			name:    "extract explicit values",
			args:    []string{"extract", "-o", "out", "--data-target-name", "orders.edn", "--pretty-print=false"},
			command: "extract",
			check: func(t *testing.T, cli *CLI) {
				assert.Equal(t, "out", cli.Extract.TargetDirectory)
				assert.Equal(t, "orders.edn", cli.Extract.DataTargetName)
				require.NotNil(t, cli.Extract.PrettyPrint)
				assert.False(t, *cli.Extract.PrettyPrint)
			},
		},
		{
			name:    "run phase",
			args:    []string{"run", "generate-resources", "--target-directory", "/tmp/out"},
			command: "run <phase>",
			check: func(t *testing.T, cli *CLI) {
				assert.Equal(t, "generate-resources", cli.Run.Phase)
				assert.Equal(t, "/tmp/out", cli.Run.TargetDirectory)
			},
		},
		{
			name:    "watch options",
			args:    []string{"watch", "--no-initial", "--debounce", "2s"},
			command: "watch",
			check: func(t *testing.T, cli *CLI) {
				assert.False(t, cli.Watch.Initial)
				assert.Equal(t, 2*time.Second, cli.Watch.Debounce)
			},
		},
		{
			name:    "watch runs initially by default",
			args:    []string{"watch"},
			command: "watch",
			check: func(t *testing.T, cli *CLI) {
				assert.True(t, cli.Watch.Initial)
			},
		},
		{
			name:    "explicit config with goals",
			args:    []string{"-c", "ci/restviz.yaml", "-v", "goals"},
			command: "goals",
			check: func(t *testing.T, cli *CLI) {
				path, explicit := cli.ConfigPath()
				assert.Equal(t, "ci/restviz.yaml", path)
				assert.True(t, explicit)
				assert.True(t, cli.Verbose)
			},
		},
		{
			name:    "init force",
			args:    []string{"init", "--force", "--output", "conf"},
			command: "init",
			check: func(t *testing.T, cli *CLI) {
				assert.True(t, cli.Init.Force)
				assert.Equal(t, "conf", cli.Init.Output)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, kctx := parse(t, tt.args...)
			assert.Equal(t, tt.command, kctx.Command())
			tt.check(t, cli)
		})
	}
}

func TestCLIParse_Rejects(t *testing.T) {
	for _, args := range [][]string{
		{"run"},
		{"extract", "--unknown"},
		{"watch", "--debounce", "soon"},
	} {
		var cli CLI
		parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
		require.NoError(t, err)
		_, err = parser.Parse(args)
		assert.Error(t, err, "args %v", args)
	}
}
