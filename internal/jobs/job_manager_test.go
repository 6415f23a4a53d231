package jobs_test

import (
	"errors"
	"testing"

	"feedme/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j recordingJob) Name() string { return j.name }

func (j recordingJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j recordingJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var events []string
		manager := jobs.NewJobManager(
			recordingJob{name: "a", events: &events},
			recordingJob{name: "b", events: &events},
		)

		require.NoError(t, manager.StartAll())
		manager.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
	})

	t.Run("stops started jobs when one fails", func(t *testing.T) {
		var events []string
		manager := jobs.NewJobManager(
			recordingJob{name: "a", events: &events},
			recordingJob{name: "b", events: &events, startErr: errors.New("bad schedule")},
			recordingJob{name: "c", events: &events},
		)

		err := manager.StartAll()

		require.EqualError(t, err, "failed to start b job: bad schedule")
		assert.Equal(t, []string{"start a", "stop a"}, events)
	})
}
