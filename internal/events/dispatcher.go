// Package events provides in-process asynchronous fan-out for domain events.
// Subscribers run out-of-band after a financial mutation has committed and
// must never influence its outcome.
package events

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SuccessfulCharge is published after a charge has debited a wallet and its
// transaction record has committed.
type SuccessfulCharge struct {
	UserID        uuid.UUID
	Email         string
	WalletID      uuid.UUID
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	Currency      string
}

// Handler consumes a SuccessfulCharge event.
type Handler func(event SuccessfulCharge)

// Dispatcher delivers events to subscribers, each on its own goroutine.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
	wg       sync.WaitGroup
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers a handler for successful charge events.
func (d *Dispatcher) Subscribe(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

// Publish delivers the event asynchronously to every subscriber. A panicking
// subscriber is logged and does not affect the others.
func (d *Dispatcher) Publish(event SuccessfulCharge) {
	d.mu.RLock()
	handlers := make([]Handler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	for _, h := range handlers {
		h := h
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("event handler panicked: %v", r)
				}
			}()
			h(event)
		}()
	}
}

// Wait blocks until all in-flight handlers have finished. Used on shutdown
// and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
