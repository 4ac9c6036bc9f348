// Пакет для управления фоновыми cron-задачами сервиса.
//
// Основные возможности:
//   - Загрузка задач из реестра.
//   - Запуск задачи вне расписания.
//   - Запуск и остановка cron-диспетчера.
package cronmanager

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

type CronJobFunc func()

type Job struct {
	Func     CronJobFunc
	Schedule string
}

type JobRegistry map[string]Job

type CronManager struct {
	dispatcher  *cron.Cron
	jobs        map[string]cron.EntryID
	mu          sync.Mutex
	jobRegistry JobRegistry
}

// NewCronManager создает менеджер задач с восстановлением после паники в задаче.
func NewCronManager(jobRegistry JobRegistry) *CronManager {
	dispatcher := cron.New(
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	return &CronManager{
		dispatcher:  dispatcher,
		jobs:        make(map[string]cron.EntryID),
		jobRegistry: jobRegistry,
	}
}

// LoadJobs добавляет в расписание все задачи реестра. Ошибки отдельных задач собираются в одну.
func (cm *CronManager) LoadJobs() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for name, entryID := range cm.jobs {
		cm.dispatcher.Remove(entryID)
		delete(cm.jobs, name)
	}

	var failed []string
	for name, job := range cm.jobRegistry {
		id, err := cm.dispatcher.AddFunc(job.Schedule, job.Func)
		if err != nil {
			slog.Error("Failed to add job", "name", name, "schedule", job.Schedule, "err", err)
			failed = append(failed, name)
			continue
		}
		cm.jobs[name] = id
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to schedule jobs %v", failed)
	}
	return nil
}

// RunNow выполняет задачу немедленно, не дожидаясь расписания.
func (cm *CronManager) RunNow(name string) bool {
	job, ok := cm.jobRegistry[name]
	if !ok {
		return false
	}
	job.Func()
	return true
}

// Scheduled возвращает имена задач в расписании.
func (cm *CronManager) Scheduled() []string {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	res := make([]string, 0, len(cm.jobs))
	for name := range cm.jobs {
		res = append(res, name)
	}
	return res
}

func (cm *CronManager) Start() {
	cm.dispatcher.Start()
}

// Stop останавливает диспетчер и ждет завершения выполняющихся задач.
func (cm *CronManager) Stop() {
	ctx := cm.dispatcher.Stop()
	<-ctx.Done()
}
