package service

import (
	"github.com/fanyer/presto-sub061/internal/adapter"
	"github.com/fanyer/presto-sub061/internal/config"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/internal/queue"
	"github.com/fanyer/presto-sub061/internal/store"
	"github.com/fanyer/presto-sub061/internal/utils"
)

// ClientServices groups the sync engine services of one client process.
type ClientServices struct {
	Queue       *queue.Queue
	Coordinator *Coordinator
	Items       *ItemFactory
	SyncJob     *SyncJob
}

// NewClientServices builds the queue, the coordinator and the scheduler.
// The queue is persisted when storages carries a queue store.
func NewClientServices(cfg *config.ClientConfig, storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, log *logger.Logger) *ClientServices {
	var job *SyncJob

	opts := []queue.Option{
		queue.WithLogger(log.GetChildLogger()),
		queue.WithOnAdded(func() {
			if job != nil {
				job.ItemAdded()
			}
		}),
	}
	if storages.Queue != nil {
		opts = append(opts, queue.WithPersister(storages.Queue, cfg.Storage.WriteDelay))
	}
	q := queue.New(opts...)

	coordinator := NewCoordinator(cfg, serverAdapter, storages.SyncState, q, log)
	job = NewSyncJob(coordinator, coordinator.shortIntervalNow, log)

	return &ClientServices{
		Queue:       q,
		Coordinator: coordinator,
		Items:       NewItemFactory(q, utils.NewUUIDGenerator()),
		SyncJob:     job,
	}
}
