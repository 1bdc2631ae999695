package eventbus

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/employee-directory/pkg/logging"
)

type args struct {
	data interface{}
}

func bufferedLogger(level logrus.Level) (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(level)
	return log, buf
}

func TestPublisher_Publish_NoMatchingSubscriber(t *testing.T) {
	type args2 struct {
		data interface{}
	}
	log, buf := bufferedLogger(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {
		t.Error("should not be called")
	})
	publisher.Publish(&args2{data: "test"})

	require.Contains(t, buf.String(), "eventbus.Publish: no matching subscribers")
}

func TestPublisher_Subscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	var got interface{}
	publisher.Subscribe(func(e *args) {
		got = e.data
	})
	publisher.Publish(&args{data: "test"})

	require.Equal(t, "test", got)
}

func TestPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher(nil)
	calls := 0
	handler := func(e *args) { calls++ }
	publisher.Subscribe(handler)
	require.Equal(t, 1, publisher.SubscribersCount())

	publisher.Unsubscribe(handler)
	require.Equal(t, 0, publisher.SubscribersCount())

	publisher.Publish(&args{})
	require.Zero(t, calls)
}

func TestMatchSignature(t *testing.T) {
	type other struct{}

	require.True(t, MatchSignature(func(e *args) {}, []interface{}{&args{}}))
	require.False(t, MatchSignature(func(e *args) {}, []interface{}{&other{}}))
	require.False(t, MatchSignature(func(e *args) {}, []interface{}{}))
	require.False(t, MatchSignature(func(e *args) {}, []interface{}{&args{}, &args{}}))
	require.True(t, MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}))
	require.True(t, MatchSignature(func(e *args) {}, []interface{}{nil}))
	require.False(t, MatchSignature("not a func", []interface{}{}))
}

func TestPublisher_PanicRecovery(t *testing.T) {
	log, buf := bufferedLogger(logrus.ErrorLevel)
	publisher := NewEventPublisher(log)

	secondCalled := false
	publisher.Subscribe(func(e *args) {
		panic("intentional panic for testing")
	})
	publisher.Subscribe(func(e *args) {
		secondCalled = true
	})

	require.NotPanics(t, func() {
		publisher.Publish(&args{data: "test"})
	})
	require.True(t, secondCalled)

	output := buf.String()
	require.True(t, strings.Contains(output, "panicked"), output)
	require.Contains(t, output, "intentional panic for testing")
}

func TestPublisher_ConcurrentPublish(t *testing.T) {
	publisher := NewEventPublisher(nil)
	var mu sync.Mutex
	count := 0
	publisher.Subscribe(func(e *args) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			publisher.Publish(&args{})
		}()
	}
	wg.Wait()

	require.Equal(t, 20, count)
}
