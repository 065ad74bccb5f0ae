package cron

import (
	"Journaly/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const defaultRetrySpec = "0 */5 * * * *"

type Manager struct {
	engine           *cron.Cron
	retrySpec        string
	deliveryRetryJob *job.DeliveryRetryJob
}

func NewCronManager(retrySpec string, deliveryRetryJob *job.DeliveryRetryJob) *Manager {
	if retrySpec == "" {
		retrySpec = defaultRetrySpec
	}
	return &Manager{
		engine:           cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		retrySpec:        retrySpec,
		deliveryRetryJob: deliveryRetryJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.retrySpec, s.deliveryRetryJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "delivery_retry", s.retrySpec)
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
