package cleanup

import (
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"stayspot/pkg/models"
)

// Images have no foreign-key cascade: when a spot deletion cascades to its
// bookings and reviews, the images of the deleted tree stay behind. Their
// deletion is deferred to this queue so the request transaction stays small.

type Job struct {
	ImageableType string
	ImageableID   uint
	EnqueuedAt    time.Time
}

type Queue struct {
	items []*Job
	mu    sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{items: make([]*Job, 0)}
}

func (q *Queue) Enqueue(imageableType string, imageableID uint) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, &Job{
		ImageableType: imageableType,
		ImageableID:   imageableID,
		EnqueuedAt:    time.Now(),
	})
}

func (q *Queue) Dequeue() *Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	job := q.items[0]
	q.items = q.items[1:]
	return job
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Default is the queue the handlers feed.
var Default = NewQueue()

type Worker struct {
	db       *gorm.DB
	queue    *Queue
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewWorker(db *gorm.DB, queue *Queue, interval time.Duration) *Worker {
	return &Worker{
		db:       db,
		queue:    queue,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (w *Worker) Start() {
	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.Drain()
			case <-w.stop:
				w.Drain()
				return
			}
		}
	}()
}

func (w *Worker) Stop() {
	close(w.stop)
	<-w.done
}

// Drain deletes orphaned images for every queued parent.
func (w *Worker) Drain() {
	for {
		job := w.queue.Dequeue()
		if job == nil {
			return
		}
		err := w.db.
			Where("imageable_type = ? AND imageable_id = ?", job.ImageableType, job.ImageableID).
			Delete(&models.Image{}).Error
		if err != nil {
			log.Printf("Image cleanup failed for %s %d: %v", job.ImageableType, job.ImageableID, err)
		}
	}
}
