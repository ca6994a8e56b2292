package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFire_RunsListenersInOrder(t *testing.T) {
	Flush()
	t.Cleanup(Flush)

	var got []string
	Listen("order.placed", func(_ context.Context, p interface{}) { got = append(got, "a:"+p.(string)) })
	Listen("order.placed", func(_ context.Context, p interface{}) { got = append(got, "b:"+p.(string)) })
	Listen("other", func(_ context.Context, _ interface{}) { got = append(got, "other") })

	Fire(context.Background(), "order.placed", "x")

	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestFire_PanickingListenerDoesNotStopOthers(t *testing.T) {
	Flush()
	t.Cleanup(Flush)

	ran := false
	Listen("e", func(context.Context, interface{}) { panic("boom") })
	Listen("e", func(context.Context, interface{}) { ran = true })

	assert.NotPanics(t, func() { Fire(context.Background(), "e", nil) })
	assert.True(t, ran)
}
