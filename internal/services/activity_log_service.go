package services

import (
	"context"
	"sync"
	"time"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultActivityQueueSize = 256
	activityInsertTimeout    = 5 * time.Second
)

// ActivityLogService writes the audit trail off the request path. Entries go
// into a bounded queue drained by one worker; a full queue or a failed insert
// is logged and dropped.
type ActivityLogService struct {
	db    *gorm.DB
	queue chan models.ActivityLog
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewActivityLogService(db *gorm.DB, queueSize int) *ActivityLogService {
	if queueSize <= 0 {
		queueSize = defaultActivityQueueSize
	}
	s := &ActivityLogService{
		db:    db,
		queue: make(chan models.ActivityLog, queueSize),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *ActivityLogService) run() {
	defer close(s.done)
	for entry := range s.queue {
		s.insert(entry)
	}
}

func (s *ActivityLogService) insert(entry models.ActivityLog) {
	ctx, cancel := context.WithTimeout(context.Background(), activityInsertTimeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": entry.UserID,
			"action":  entry.Action,
			"entity":  entry.Entity,
		}).WithError(err).Error("failed to write activity log")
	}
}

// Log enqueues an entry. It never blocks and never fails the caller.
func (s *ActivityLogService) Log(actor Actor, action, entity, entityID string, details map[string]interface{}) {
	if actor.UserID == "" {
		return
	}

	entry := models.ActivityLog{
		UserID:    actor.UserID,
		Action:    action,
		Entity:    entity,
		EntityID:  stringPtr(entityID),
		Details:   details,
		IPAddress: stringPtr(actor.IP),
		UserAgent: stringPtr(actor.UserAgent),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		logrus.WithField("action", action).Warn("activity log closed, entry dropped")
		return
	}

	select {
	case s.queue <- entry:
	default:
		logrus.WithFields(logrus.Fields{
			"action": action,
			"entity": entity,
		}).Warn("activity log queue full, entry dropped")
	}
}

// Close stops accepting entries and waits until the queue is drained.
func (s *ActivityLogService) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()
	<-s.done
}

func (s *ActivityLogService) GetRecent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	var logs []models.ActivityLog
	err := s.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "role")
		}).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	return logs, nil
}
