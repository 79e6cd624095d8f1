package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/emzola/shelfwise/config"
	"github.com/emzola/shelfwise/data"
	"github.com/emzola/shelfwise/internal/jsonlog"
	"github.com/emzola/shelfwise/internal/metrics"
	"github.com/emzola/shelfwise/internal/validator"
	"github.com/sony/gobreaker/v2"
)

const (
	defaultQueueSize       = 256
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
	drainTimeout           = 5 * time.Second
)

// ErrActivityQueueFull is logged when Record finds the queue at capacity.
var ErrActivityQueueFull = errors.New("activity queue full")

type activityStore interface {
	InsertActivity(ctx context.Context, activity *data.Activity) error
}

// Recorder appends activities at most once and off the request path. Record
// enqueues onto a bounded channel and Serve drains it into the store through
// a circuit breaker. Failures are logged and counted but never returned.
type Recorder struct {
	logger  *jsonlog.Logger
	store   activityStore
	queue   chan *data.Activity
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewRecorder creates a Recorder sized and tuned by cfg.Activity.
func NewRecorder(cfg config.Config, logger *jsonlog.Logger, store activityStore) *Recorder {
	size := cfg.Activity.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	failures := cfg.Activity.BreakerFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}
	timeout := cfg.Activity.BreakerTimeout
	if timeout <= 0 {
		timeout = defaultBreakerTimeout
	}
	r := &Recorder{
		logger: logger,
		store:  store,
		queue:  make(chan *data.Activity, size),
	}
	r.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "activity-store",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.PrintInfo("circuit breaker state changed", map[string]string{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	return r
}

// Record enqueues an activity without blocking. A full queue drops it.
func (r *Recorder) Record(activityType data.ActivityType, userID, targetID int64, metadata map[string]any) {
	activity := &data.Activity{
		UserID:   userID,
		Type:     activityType,
		TargetID: targetID,
		Metadata: metadata,
	}
	v := validator.New()
	if data.ValidateActivity(v, activity); !v.Valid() {
		r.drop(activity, metrics.DropInvalid, failedValidation(v))
		return
	}
	select {
	case r.queue <- activity:
		metrics.ActivityQueueDepth.Set(float64(len(r.queue)))
	default:
		r.drop(activity, metrics.DropQueueFull, ErrActivityQueueFull)
	}
}

// Serve persists queued activities until ctx is done, then flushes whatever
// is still queued within drainTimeout.
func (r *Recorder) Serve(ctx context.Context) error {
	storeCtx := context.WithoutCancel(ctx)
	for {
		select {
		case activity := <-r.queue:
			r.persist(storeCtx, activity)
		case <-ctx.Done():
			r.drain(ctx)
			return ctx.Err()
		}
	}
}

func (r *Recorder) String() string {
	return "activity-recorder"
}

// Pending returns the number of queued activities.
func (r *Recorder) Pending() int {
	return len(r.queue)
}

func (r *Recorder) drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()
	for {
		select {
		case activity := <-r.queue:
			r.persist(ctx, activity)
		default:
			return
		}
	}
}

func (r *Recorder) persist(ctx context.Context, activity *data.Activity) {
	metrics.ActivityQueueDepth.Set(float64(len(r.queue)))
	_, err := r.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, r.store.InsertActivity(ctx, activity)
	})
	switch {
	case err == nil:
		metrics.ActivitiesRecorded.WithLabelValues(string(activity.Type)).Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		r.drop(activity, metrics.DropBreakerOpen, err)
	default:
		r.drop(activity, metrics.DropStoreError, err)
	}
}

func (r *Recorder) drop(activity *data.Activity, reason string, err error) {
	metrics.ActivitiesDropped.WithLabelValues(reason).Inc()
	r.logger.PrintError(err, map[string]string{
		"reason":        reason,
		"activity_type": string(activity.Type),
		"user_id":       strconv.FormatInt(activity.UserID, 10),
		"target_id":     strconv.FormatInt(activity.TargetID, 10),
	})
}
