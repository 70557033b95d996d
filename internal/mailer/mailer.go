package mailer

import (
	"context"
	"time"

	"github.com/skserveur/storefront/pkg/logger"
	"github.com/skserveur/storefront/pkg/worker"
)

// Email is one outgoing notification. Plain text only.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single email synchronously.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Dispatcher sends notifications best-effort through a worker pool. Enqueue
// never blocks the caller and never returns an error: a lost email must not
// fail the order or recharge that triggered it.
type Dispatcher struct {
	sender  Sender
	manager *worker.WorkerManager
	timeout time.Duration
}

func NewDispatcher(sender Sender, workers, queueSize int) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		manager: worker.NewWorkerManager(queueSize, workers, nil),
		timeout: 15 * time.Second,
	}
	d.manager.SetWorker(d.deliver)
	return d
}

// Start blocks until the worker pool terminates. Run it in its own goroutine.
func (d *Dispatcher) Start() error {
	return d.manager.Start()
}

func (d *Dispatcher) Stop() {
	d.manager.Exit()
}

// Enqueue schedules an email for delivery. When the queue is full the email
// is dropped and logged, never blocking the request path.
func (d *Dispatcher) Enqueue(email *Email) {
	if email == nil || email.To == "" {
		return
	}
	select {
	case d.manager.JobEvents() <- email:
	default:
		logger.Warn("mail queue full, dropping notification", "to", email.To, "subject", email.Subject)
	}
}

func (d *Dispatcher) deliver(workerIndex int, job interface{}) {
	email, ok := job.(*Email)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, email); err != nil {
		logger.Error("failed to send notification", "to", email.To, "subject", email.Subject, "error", err)
		return
	}
	logger.Debug("notification sent", "worker", workerIndex, "to", email.To, "subject", email.Subject)
}

// LogSender writes emails to the log instead of delivering them. Default
// driver for dev environments.
type LogSender struct{}

func (LogSender) Send(_ context.Context, email *Email) error {
	logger.Info("mail (log driver)", "to", email.To, "subject", email.Subject, "body", email.Body)
	return nil
}
