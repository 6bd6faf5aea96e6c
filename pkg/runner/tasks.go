package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/assocweb/ingest/pkg/domain"
)

// taskQueue is a bounded queue of async runs with task records kept in a TTL cache
type taskQueue struct {
	queue  chan string
	cache  *cache.Cache
	mu     sync.Mutex // serializes read-modify-write of task records
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func newTaskQueue(size int, ttl time.Duration) *taskQueue {
	return &taskQueue{queue: make(chan string, size), cache: cache.New(ttl, ttl/2)}
}

func (q *taskQueue) get(id string) (domain.Task, bool) {
	v, ok := q.cache.Get(id)
	if !ok {
		return domain.Task{}, false
	}
	task, ok := v.(domain.Task)
	return task, ok
}

func (q *taskQueue) update(id string, fn func(t *domain.Task)) (domain.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	task, ok := q.get(id)
	if !ok {
		return domain.Task{}, false
	}
	fn(&task)
	q.cache.SetDefault(id, task)
	return task, true
}

// Submit queues a run of target, a scraper name or TargetAll, and returns the task id.
// The run is picked up by the worker started with Start.
func (o *Orchestrator) Submit(target string) (string, error) {
	if target != TargetAll && !o.Has(target) {
		return "", fmt.Errorf("%w: %s", ErrUnknownScraper, target)
	}

	task := domain.Task{ID: uuid.NewString(), Target: target, State: domain.TaskQueued, SubmittedAt: o.now()}
	o.tasks.cache.SetDefault(task.ID, task)

	select {
	case o.tasks.queue <- task.ID:
		lgr.Printf("[INFO] task %s queued for %s", task.ID, target)
		return task.ID, nil
	default:
		o.tasks.cache.Delete(task.ID)
		return "", ErrQueueFull
	}
}

// Task returns the record of a submitted task, false if unknown or expired
func (o *Orchestrator) Task(id string) (domain.Task, bool) {
	return o.tasks.get(id)
}

// Start runs the worker processing submitted tasks one at a time
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, o.tasks.cancel = context.WithCancel(ctx)
	o.tasks.wg.Add(1)
	go func() {
		defer o.tasks.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case id := <-o.tasks.queue:
				o.runTask(ctx, id)
			}
		}
	}()
	lgr.Printf("[INFO] task worker started")
}

// Stop cancels the worker and waits for the current task to finish.
// Tasks still queued are marked done with a cancelled result.
func (o *Orchestrator) Stop() {
	if o.tasks.cancel != nil {
		o.tasks.cancel()
	}
	o.tasks.wg.Wait()
	cancelled := o.drainTasks()
	lgr.Printf("[INFO] task worker stopped, %d queued tasks cancelled", cancelled)
}

func (o *Orchestrator) drainTasks() (count int) {
	for {
		select {
		case id := <-o.tasks.queue:
			_, ok := o.tasks.update(id, func(t *domain.Task) {
				finished := o.now()
				t.State = domain.TaskDone
				t.FinishedAt = &finished
				t.Results = map[string]domain.ScrapeResult{t.Target: domain.FailedResult(ErrCancelled)}
			})
			if ok {
				count++
			}
		default:
			return count
		}
	}
}

func (o *Orchestrator) runTask(ctx context.Context, id string) {
	task, ok := o.tasks.update(id, func(t *domain.Task) { t.State = domain.TaskRunning })
	if !ok {
		lgr.Printf("[WARN] task %s expired before it started", id)
		return
	}

	var results map[string]domain.ScrapeResult
	if task.Target == TargetAll {
		results = o.RunAll(ctx)
	} else {
		results = map[string]domain.ScrapeResult{task.Target: o.RunOne(ctx, task.Target)}
	}

	o.tasks.update(id, func(t *domain.Task) {
		finished := o.now()
		t.State = domain.TaskDone
		t.FinishedAt = &finished
		t.Results = results
	})
	lgr.Printf("[INFO] task %s for %s done", id, task.Target)
}
