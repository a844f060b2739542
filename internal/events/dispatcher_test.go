package events

import (
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToAllSubscribers(t *testing.T) {
	d := NewDispatcher()

	var first, second atomic.Int32
	d.Subscribe(func(event SuccessfulCharge) { first.Add(1) })
	d.Subscribe(func(event SuccessfulCharge) { second.Add(1) })

	event := SuccessfulCharge{
		UserID: uuid.New(),
		Amount: decimal.RequireFromString("10.00"),
	}
	d.Publish(event)
	d.Publish(event)
	d.Wait()

	assert.Equal(t, int32(2), first.Load())
	assert.Equal(t, int32(2), second.Load())
}

func TestDispatcherSurvivesPanickingSubscriber(t *testing.T) {
	d := NewDispatcher()

	var delivered atomic.Int32
	d.Subscribe(func(event SuccessfulCharge) { panic("boom") })
	d.Subscribe(func(event SuccessfulCharge) { delivered.Add(1) })

	d.Publish(SuccessfulCharge{UserID: uuid.New()})
	d.Wait()

	assert.Equal(t, int32(1), delivered.Load())
}

func TestDispatcherWithoutSubscribers(t *testing.T) {
	d := NewDispatcher()
	d.Publish(SuccessfulCharge{UserID: uuid.New()})
	d.Wait()
}
