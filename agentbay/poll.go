package agentbay

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/alex-ant/gomath/rational"
)

// ErrPollExhausted 表示轮询次数已用尽但任务仍未完成。
var ErrPollExhausted = errors.New("polling attempts exhausted")

// PollOption 配置轮询行为的选项。
type PollOption func(*pollOpts)

type pollOpts struct {
	interval    time.Duration
	maxInterval time.Duration
	backoff     float64 // 退避倍数，默认 1.0（无退避）
	maxAttempts int     // 0 表示不限制
	jitter      bool
	onPoll      func(attempt int)
}

func defaultPollOpts(defaultInterval time.Duration, maxAttempts int) *pollOpts {
	return &pollOpts{
		interval:    defaultInterval,
		backoff:     1.0,
		maxAttempts: maxAttempts,
	}
}

func (o *pollOpts) apply(opts []PollOption) *pollOpts {
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// WithPollInterval 设置轮询间隔。
func WithPollInterval(d time.Duration) PollOption {
	return func(o *pollOpts) { o.interval = d }
}

// WithBackoff 设置指数退避倍数和最大间隔。
// maxInterval 为间隔上限（0 表示不限制）。
func WithBackoff(multiplier float64, maxInterval time.Duration) PollOption {
	return func(o *pollOpts) {
		o.backoff = multiplier
		o.maxInterval = maxInterval
	}
}

// WithMaxAttempts 设置最大轮询次数，0 表示只受 ctx 限制。
func WithMaxAttempts(n int) PollOption {
	return func(o *pollOpts) { o.maxAttempts = n }
}

// WithJitter 使每次等待时长在 [0.5, 1.5) 倍间隔内随机浮动。
func WithJitter() PollOption {
	return func(o *pollOpts) { o.jitter = true }
}

// WithOnPoll 设置每次轮询时的回调函数。attempt 从 1 开始递增。
func WithOnPoll(fn func(attempt int)) PollOption {
	return func(o *pollOpts) { o.onPoll = fn }
}

var (
	jitterRand  = rand.New(rand.NewSource(time.Now().UnixNano()))
	jitterMutex sync.Mutex

	jitterMin = rational.New(1, 2)
	jitterMax = rational.New(3, 2)
)

func jittered(d time.Duration) time.Duration {
	min := jitterMin.MultiplyByNum(int64(d))
	max := jitterMax.MultiplyByNum(int64(d))
	diff := int64(max.Subtract(min).Float64())
	if diff <= 0 {
		return d
	}
	jitterMutex.Lock()
	r := jitterRand.Int63n(diff)
	jitterMutex.Unlock()
	return time.Duration(min.AddNum(r).Float64())
}

// pollLoop 是上下文同步等待与会话创建等待共享的轮询循环。
// pollFn 在每次轮询时被调用，返回 (done, result, error)。
func pollLoop[T any](ctx context.Context, opts *pollOpts, pollFn func() (bool, T, error)) (T, error) {
	if opts.interval <= 0 {
		opts.interval = time.Second
	}

	interval := opts.interval
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	attempt := 0
	for {
		attempt++
		if opts.onPoll != nil {
			opts.onPoll(attempt)
		}

		done, result, err := pollFn()
		if err != nil {
			return result, err
		}
		if done {
			return result, nil
		}
		if opts.maxAttempts > 0 && attempt >= opts.maxAttempts {
			return result, fmt.Errorf("%w after %d attempts", ErrPollExhausted, attempt)
		}

		if opts.backoff > 1.0 {
			interval = time.Duration(float64(interval) * opts.backoff)
			if opts.maxInterval > 0 && interval > opts.maxInterval {
				interval = opts.maxInterval
			}
		}
		wait := interval
		if opts.jitter {
			wait = jittered(interval)
		}

		if timer == nil {
			timer = time.NewTimer(wait)
		} else {
			timer.Reset(wait)
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
