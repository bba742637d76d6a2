package services

import (
	"time"

	"github.com/sjperalta/vehifin-api/internal/jobs"
)

// PurgeTokensInterval is how often expired refresh tokens are deleted
const PurgeTokensInterval = 6 * time.Hour

type JobService struct {
	worker *jobs.Worker
}

func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{
		worker: worker,
	}
}

// StartScheduled registers the recurring maintenance jobs
func (s *JobService) StartScheduled(auth *AuthService) {
	s.worker.ScheduleEveryImmediate("purge_refresh_tokens", PurgeTokensInterval, auth.PurgeExpiredTokens)
}

func (s *JobService) GetStatus() jobs.WorkerStats {
	return s.worker.GetStats()
}
