package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoodyplace/moodyplace-go/internal/testutil"
)

func TestRegister(t *testing.T) {
	s := New(testutil.TestLogger())

	s.Register("noop", "@daily", func(ctx context.Context) error { return nil })

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "noop", jobs[0].Name)
	assert.Equal(t, "@daily", jobs[0].Schedule)
}

func TestRegister_BadScheduleRejected(t *testing.T) {
	s := New(testutil.TestLogger())

	s.Register("broken", "not a schedule", func(ctx context.Context) error { return nil })

	assert.Empty(t, s.Jobs())
}

func TestStartStop(t *testing.T) {
	s := New(testutil.TestLogger())
	s.Register("noop", "@daily", func(ctx context.Context) error { return nil })

	s.Start()
	s.Stop()
}

func TestRunJob_ReportsError(t *testing.T) {
	s := New(testutil.TestLogger())

	ran := false
	job := Job{Name: "probe", Run: func(ctx context.Context) error {
		ran = true
		require.NotNil(t, ctx.Done())
		return nil
	}}
	s.runJob(job)

	assert.True(t, ran)
}
