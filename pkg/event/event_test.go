package event_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/eduportal/pkg/event"
)

func TestFireCallsListenersInOrder(t *testing.T) {
	d := event.NewDispatcher()
	var calls []string

	d.Listen(event.CourseAdded, func(_ context.Context, p interface{}) { calls = append(calls, "first:"+p.(string)) })
	d.Listen(event.CourseAdded, func(_ context.Context, p interface{}) { calls = append(calls, "second:"+p.(string)) })
	d.Listen(event.OrderPaid, func(_ context.Context, _ interface{}) { calls = append(calls, "wrong") })

	d.Fire(context.Background(), event.CourseAdded, "Go 101")

	assert.Equal(t, []string{"first:Go 101", "second:Go 101"}, calls)
}

func TestNilDispatcherDropsEvents(t *testing.T) {
	var d *event.Dispatcher
	assert.NotPanics(t, func() { d.Fire(context.Background(), event.OrderPaid, nil) })
}
