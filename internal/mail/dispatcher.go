package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fitstride/fitstride-api/internal/redact"
)

// DispatcherConfig holds configuration for the mail dispatcher.
type DispatcherConfig struct {
	// WorkerCount determines how many concurrent workers deliver mail.
	WorkerCount int

	// QueueSize determines the buffer size of the in-memory mail queue.
	QueueSize int

	// SendTimeout bounds each individual delivery attempt.
	SendTimeout time.Duration
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		WorkerCount: 2,
		QueueSize:   100,
		SendTimeout: 10 * time.Second,
	}
}

// Dispatcher delivers outbound mail on background workers so that a slow or
// failing transport can never stall or fail the request that triggered the
// message. Enqueue never blocks: when the queue is full the message is
// dropped and logged, since account state is the durable source of truth and
// email is best-effort.
type Dispatcher struct {
	gateway    Gateway
	msgChan    chan Message
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     DispatcherConfig
	logger     *slog.Logger

	// mu orders Enqueue against Stop so a racing enqueue can never hit the
	// closed channel.
	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher creates a new Dispatcher delivering through the given
// gateway.
func NewDispatcher(gateway Gateway, cfg DispatcherConfig, log *slog.Logger) *Dispatcher {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultDispatcherConfig().WorkerCount
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultDispatcherConfig().QueueSize
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultDispatcherConfig().SendTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		gateway:    gateway,
		msgChan:    make(chan Message, cfg.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     cfg,
		logger:     log.With(slog.String("component", "mail_dispatcher")),
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	for i := 0; i < d.config.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	d.logger.Info("mail dispatcher started",
		"worker_count", d.config.WorkerCount,
		"queue_size", d.config.QueueSize)
}

// Stop shuts the dispatcher down, delivering messages already queued before
// returning. It is idempotent and safe to call while Enqueue is in flight;
// later Enqueue calls drop their message.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.msgChan)
	d.wg.Wait()
	d.cancelFunc()
	d.logger.Info("mail dispatcher stopped")
}

// Enqueue queues the message for background delivery. It never blocks; a
// full queue or a stopped dispatcher drops the message with a warning.
func (d *Dispatcher) Enqueue(msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.logger.Warn("dispatcher stopped, dropping message",
			"subject", msg.Subject)
		return
	}

	select {
	case d.msgChan <- msg:
	default:
		d.logger.Warn("mail queue full, dropping message",
			"subject", msg.Subject)
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for msg := range d.msgChan {
		ctx, cancel := context.WithTimeout(d.ctx, d.config.SendTimeout)
		err := d.gateway.Send(ctx, msg)
		cancel()

		if err != nil {
			// Best-effort: log and move on, the triggering operation has
			// already committed.
			d.logger.Error("failed to send mail",
				"error", redact.Error(err),
				"worker", id,
				"subject", msg.Subject)
			continue
		}

		d.logger.Debug("mail sent",
			"worker", id,
			"subject", msg.Subject)
	}
}
