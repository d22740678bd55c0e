package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anphat-erp/anphat-erp/jobs"
)

func newTestJobsCLI(t *testing.T) *JobsCLI {
	t.Helper()
	cli, err := NewJobsCLI("127.0.0.1:6379")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })
	return cli
}

func TestTriggerRejectsNonNumericProjectID(t *testing.T) {
	cli := newTestJobsCLI(t)
	_, err := cli.Trigger(context.Background(), jobs.TaskProjectRollup, "abc")
	require.ErrorContains(t, err, "needs a project id")
}

func TestTriggerRejectsNonPositiveProjectID(t *testing.T) {
	cli := newTestJobsCLI(t)
	_, err := cli.Trigger(context.Background(), jobs.TaskProjectRollup, "0")
	require.ErrorContains(t, err, "needs a project id")
}

func TestTriggerRejectsUnknownJob(t *testing.T) {
	cli := newTestJobsCLI(t)
	_, err := cli.Trigger(context.Background(), "quotes:rebuild", "")
	require.ErrorContains(t, err, "unsupported job")
}

func TestTriggerRequiresClient(t *testing.T) {
	var cli *JobsCLI
	_, err := cli.Trigger(context.Background(), jobs.TaskCatalogWarmup, "")
	require.ErrorContains(t, err, "client not configured")
}
