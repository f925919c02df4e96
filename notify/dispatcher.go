// Package notify owns outbound notification delivery. Trip observers and
// promotion broadcasts enqueue here; a single background loop drains the queue
// through a pluggable Sender. The queue replaces ad-hoc shared lists: the
// dispatcher is the only owner, and enqueue/dequeue sides are explicit.
package notify

import (
	"fmt"
	"log"
	"sync"

	"train-booking/domain"
)

// Outbound is a notification addressed to a recipient channel (an email
// address in this deployment).
type Outbound struct {
	Recipient    string
	Notification domain.Notification
}

// Sender delivers a single notification to a recipient.
type Sender interface {
	Send(recipient string, n domain.Notification) error
}

// LogSender writes notifications to the process log. Stands in for a mail or
// push gateway.
type LogSender struct{}

func (LogSender) Send(recipient string, n domain.Notification) error {
	log.Printf("Notification sent: recipient=%s kind=%s message=%q", recipient, n.Kind, n.Message)
	return nil
}

// Dispatcher drains a buffered queue of outbound notifications. Delivery
// errors are logged and never stop the loop.
type Dispatcher struct {
	sender Sender
	queue  chan Outbound
	quit   chan struct{}
	wg     sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewDispatcher builds a dispatcher with the given queue capacity.
func NewDispatcher(sender Sender, buffer int) *Dispatcher {
	if buffer < 1 {
		buffer = 64
	}
	return &Dispatcher{
		sender: sender,
		queue:  make(chan Outbound, buffer),
		quit:   make(chan struct{}),
	}
}

// Start launches the delivery loop.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		d.wg.Add(1)
		go d.run()
	})
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case out := <-d.queue:
			d.deliver(out)
		case <-d.quit:
			// Drain whatever is already queued before exiting.
			for {
				select {
				case out := <-d.queue:
					d.deliver(out)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(out Outbound) {
	if err := d.sender.Send(out.Recipient, out.Notification); err != nil {
		log.Printf("Notification delivery failed: recipient=%s kind=%s: %v", out.Recipient, out.Notification.Kind, err)
	}
}

// Enqueue queues a notification for delivery. A full queue is reported rather
// than blocking the caller.
func (d *Dispatcher) Enqueue(recipient string, n domain.Notification) error {
	select {
	case d.queue <- Outbound{Recipient: recipient, Notification: n}:
		return nil
	default:
		return fmt.Errorf("notification queue full, dropped %s for %s", n.Kind, recipient)
	}
}

// Stop ends the loop after draining the queue. Safe to call more than once.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.quit)
	})
	d.wg.Wait()
}

// Subscriber adapts a recipient address to the trip Observer protocol: every
// trip update is queued on the dispatcher for that recipient.
type Subscriber struct {
	Recipient  string
	Dispatcher *Dispatcher
}

func (s *Subscriber) Update(n domain.Notification) {
	if err := s.Dispatcher.Enqueue(s.Recipient, n); err != nil {
		log.Printf("Subscriber enqueue failed: %v", err)
	}
}
