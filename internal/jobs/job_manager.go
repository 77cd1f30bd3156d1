package jobs

import (
	"fmt"
	"log/slog"
)

type job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  job
}

// JobManager starts and stops the scheduled jobs as one unit.
type JobManager struct {
	jobs []namedJob
}

func NewJobManager(
	receiveOrdersHandler ReceiveOrdersHandler,
	recorder BatchRecorder,
	intakeSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{name: "intake receiver", job: NewIntakeReceiverJob(receiveOrdersHandler, recorder, intakeSchedule, logger)},
		},
	}
}

// StartAll starts the jobs in order. When one fails, the jobs already
// started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			stopAll(jm.jobs[:i])
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

func (jm *JobManager) StopAll() {
	stopAll(jm.jobs)
}

func stopAll(jobs []namedJob) {
	for i := len(jobs) - 1; i >= 0; i-- {
		jobs[i].job.Stop()
	}
}
