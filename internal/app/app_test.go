package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/hprogress/internal/console"
	apperrors "github.com/agbru/hprogress/internal/errors"
	"github.com/agbru/hprogress/internal/logging"
	"github.com/agbru/hprogress/internal/orchestration"
	"github.com/agbru/hprogress/internal/progress"
)

func newApp(t *testing.T, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var errBuf bytes.Buffer
	a, err := New(append([]string{"progressdemo"}, args...), &errBuf)
	require.NoError(t, err)
	return a, &errBuf
}

func TestNewParsesArguments(t *testing.T) {
	a, _ := newApp(t, "--scenario", "workers", "--workers", "2")
	assert.Equal(t, "workers", a.Config.Scenario)
	assert.Equal(t, 2, a.Config.Workers)
	assert.Equal(t, []string{"demo", "rollback", "workers"}, a.Registry.Names())
}

func TestNewErrors(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"progressdemo", "--help"}, &errBuf)
	assert.True(t, IsHelpError(err))
	assert.Contains(t, errBuf.String(), "-scenario")

	_, err = New([]string{"progressdemo", "--style", "fancy"}, &errBuf)
	require.Error(t, err)
	assert.False(t, IsHelpError(err))
	assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
}

func TestRunWithoutTerminal(t *testing.T) {
	a, _ := newApp(t, "--scenario", "rollback", "--steps", "4", "--delay", "0s")

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, out.String(), "rollback done in")
	assert.Contains(t, out.String(), "(final 100.00 %)")
}

func TestRunWithBar(t *testing.T) {
	var screen bytes.Buffer
	t.Setenv("NO_COLOR", "1")
	a, err := New([]string{"progressdemo", "--scenario", "workers", "--workers", "2", "--steps", "3", "--delay", "0s"},
		&bytes.Buffer{}, WithConsole(console.NewWriterTerminal(&screen, 60)))
	require.NoError(t, err)

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, screen.String(), "100.00 %")
	assert.Contains(t, out.String(), "workers done")
	assert.Regexp(t, `[1-9]\d* rendered`, out.String())
}

func TestRunReportsPeakProgress(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	retreat := orchestration.ScenarioFunc{
		ScenarioName: "retreat",
		Summary:      "moves forward then back",
		Fn: func(_ context.Context, root *progress.Node, _ orchestration.Params) error {
			task, err := root.Fork(1, "Deploy")
			if err != nil {
				return err
			}
			for _, p := range []float64{0.2, 0.8, 0.3} {
				if err := task.Report(p); err != nil {
					return err
				}
			}
			return nil
		},
	}
	a, err := New([]string{"progressdemo", "--scenario", "retreat"}, &bytes.Buffer{},
		WithRegistry(orchestration.NewRegistry(retreat)))
	require.NoError(t, err)

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, out.String(), "(final 30.00 %, peak 80.00 %)")
}

func TestPeakTrackerFinish(t *testing.T) {
	root := progress.NewRoot()
	tr, err := trackPeak(root)
	require.NoError(t, err)
	for _, p := range []float64{0.1, 0.6, 0.4} {
		require.NoError(t, root.Report(p))
	}
	assert.InDelta(t, 0.6, tr.finish(root, logging.NewNopLogger()), 1e-12)

	require.NoError(t, root.Report(0.9))
	assert.InDelta(t, 0.6, tr.peak, 1e-12, "detached tracker must not see later snapshots")
}

func TestRunTimeout(t *testing.T) {
	a, _ := newApp(t, "--scenario", "workers", "--delay", "1h", "--timeout", "10ms")

	var out bytes.Buffer
	start := time.Now()
	code := a.Run(context.Background(), &out)
	assert.Equal(t, apperrors.ExitErrorTimeout, code)
	assert.Less(t, time.Since(start), time.Minute)
	assert.Contains(t, out.String(), "failed")
	assert.Contains(t, out.String(), "interrupted")
}

func TestRunCanceled(t *testing.T) {
	a, _ := newApp(t, "--scenario", "demo", "--delay", "1h")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := a.Run(ctx, &bytes.Buffer{})
	assert.Equal(t, apperrors.ExitErrorCanceled, code)
}

func TestRunMetricsOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.prom")
	a, _ := newApp(t, "--scenario", "rollback", "--steps", "2", "--delay", "0s", "--metrics-out", path)

	require.Equal(t, apperrors.ExitSuccess, a.Run(context.Background(), &bytes.Buffer{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `progressdemo_renders_total{outcome="rendered"}`)
	assert.Contains(t, string(data), "progressdemo_progress_ratio 1")
	assert.Contains(t, string(data), "go_goroutines")
}

func TestRunMetricsToErrWriter(t *testing.T) {
	a, errBuf := newApp(t, "--scenario", "rollback", "--steps", "2", "--delay", "0s", "--metrics-out", "-")
	require.Equal(t, apperrors.ExitSuccess, a.Run(context.Background(), &bytes.Buffer{}))
	assert.Contains(t, errBuf.String(), "# TYPE progressdemo_updates_total counter")
}

func TestRunMetricsOutUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "metrics.prom")
	a, errBuf := newApp(t, "--scenario", "rollback", "--steps", "2", "--delay", "0s", "--metrics-out", path)
	assert.Equal(t, apperrors.ExitErrorGeneric, a.Run(context.Background(), &bytes.Buffer{}))
	assert.Contains(t, errBuf.String(), "writing metrics failed")
}

func TestRunCompletion(t *testing.T) {
	a, _ := newApp(t, "--completion", "fish")
	var out bytes.Buffer
	assert.Equal(t, apperrors.ExitSuccess, a.Run(context.Background(), &out))
	assert.Contains(t, out.String(), "complete -c progressdemo")
	assert.Contains(t, out.String(), "rollback")
}

func TestRunVersion(t *testing.T) {
	a, _ := newApp(t, "--version")
	var out bytes.Buffer
	assert.Equal(t, apperrors.ExitSuccess, a.Run(context.Background(), &out))
	assert.True(t, strings.HasPrefix(out.String(), "progressdemo "+Version))
}

func TestRunLogsInvalidEnv(t *testing.T) {
	t.Setenv("PROGRESSDEMO_STEPS", "lots")
	a, errBuf := newApp(t, "--scenario", "rollback", "--delay", "0s")
	require.Equal(t, apperrors.ExitSuccess, a.Run(context.Background(), &bytes.Buffer{}))
	assert.Contains(t, errBuf.String(), "PROGRESSDEMO_STEPS")
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"--scenario", "demo", "-V"}, true},
		{[]string{"--", "-V"}, false},
		{[]string{"--scenario", "demo"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasVersionFlag(tt.args), "args %v", tt.args)
	}
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	PrintVersion(&out)
	assert.Contains(t, out.String(), "commit:")
	assert.Contains(t, out.String(), "go:")
}
