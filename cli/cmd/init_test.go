package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type initCLI struct {
	LogLevel    string        `default:"warn"`
	Pretty      bool          `default:"true"`
	NetCount    int           `default:"20"`
	NetInterval time.Duration `default:"420ms"`
	Ratio       float64       `default:"2"`
	DBFile      string
	Tags        []string `default:"a,b"`

	Init Init `cmd:""`
}

func initContext(t *testing.T, path string, args ...string) (context.Context, *initCLI) {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli,
		kong.Vars{ConfigIdentifier: path},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	require.NoError(t, err)

	return WithContext(t.Context(), ktx), &cli
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "santa", "config.santa")

	ctx, cli := initContext(t, path)
	require.NoError(t, cli.Init.Run(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `log_level = "warn";
pretty = true;
net_count = 20;
net_interval = "420ms";
ratio = 2.0;
tags = ["a", "b"];
`
	assert.Equal(t, want, string(data))

	// Existing file is kept without --force.
	err = cli.Init.Run(ctx)
	require.ErrorIs(t, err, ErrWriteConfig)
	require.ErrorIs(t, err, ErrFileExists)

	ctx, cli = initContext(t, path, "--force", "--log-level=debug")
	require.NoError(t, cli.Init.Run(ctx))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `log_level = "debug";`)
}

func TestInit_NoContext(t *testing.T) {
	err := (&Init{}).Run(t.Context())
	require.ErrorIs(t, err, ErrNoContext)
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		value any
		want  string
		ok    bool
	}{
		{nil, "", false},
		{"", "", false},
		{[]string{}, "", false},
		{true, "true", true},
		{`say "ho"`, `"say \"ho\""`, true},
		{int64(-3), "-3", true},
		{uint8(7), "7", true},
		{float32(0.5), "0.5", true},
		{3.0, "3.0", true},
		{time.Second, `"1s"`, true},
	}

	for _, tt := range tests {
		got, ok := literal(tt.value)
		assert.Equal(t, tt.ok, ok, "%#v", tt.value)
		assert.Equal(t, tt.want, got, "%#v", tt.value)
	}
}
