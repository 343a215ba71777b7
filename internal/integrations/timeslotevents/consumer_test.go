package timeslotevents

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []int64
	err   error
}

func (f *fakeGenerator) Execute(_ context.Context, req *generate_availabilities.Request) (*generate_availabilities.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req.PractitionerID)
	if f.err != nil {
		return nil, f.err
	}
	return &generate_availabilities.Response{}, nil
}

func (f *fakeGenerator) Calls() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.calls...)
}

// fakeReader отдает заранее заданные сообщения, затем блокируется до отмены контекста
type fakeReader struct {
	messages chan kafka.Message
	closed   chan struct{}
}

func newFakeReader(values ...string) *fakeReader {
	r := &fakeReader{
		messages: make(chan kafka.Message, len(values)),
		closed:   make(chan struct{}),
	}
	for i, v := range values {
		r.messages <- kafka.Message{Offset: int64(i), Value: []byte(v)}
	}
	return r
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-r.messages:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) Close() error {
	close(r.closed)
	return nil
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *Event
		wantErr error
	}{
		{
			name:  "created",
			value: `{"eventType":"time_slot.created","practitionerId":3}`,
			want:  &Event{EventType: EventTimeSlotCreated, PractitionerID: 3},
		},
		{
			name:  "modified",
			value: `{"eventType":"time_slot.modified","practitionerId":1}`,
			want:  &Event{EventType: EventTimeSlotModified, PractitionerID: 1},
		},
		{name: "malformed", value: `{`, wantErr: ErrInvalidEvent},
		{name: "unknown type", value: `{"eventType":"time_slot.deleted","practitionerId":1}`, wantErr: ErrUnknownEventType},
		{name: "missing practitioner", value: `{"eventType":"time_slot.created"}`, wantErr: ErrInvalidEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent([]byte(tt.value))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleMessage_GenerationError(t *testing.T) {
	genErr := errors.New("boom")
	c := NewConsumer(newFakeReader(), &fakeGenerator{err: genErr}, logger.NewNop())

	err := c.HandleMessage(context.Background(),
		kafka.Message{Value: []byte(`{"eventType":"time_slot.created","practitionerId":2}`)})

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, genErr)
}

func TestRun_ProcessesValidEventsAndSkipsBadOnes(t *testing.T) {
	reader := newFakeReader(
		`{"eventType":"time_slot.created","practitionerId":1}`,
		`not json`,
		`{"eventType":"time_slot.modified","practitionerId":4}`,
	)
	generator := &fakeGenerator{}
	c := NewConsumer(reader, generator, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(generator.Calls()) == 2 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop after context cancellation")
	}

	assert.Equal(t, []int64{1, 4}, generator.Calls())
	select {
	case <-reader.closed:
	default:
		t.Fatal("reader was not closed")
	}
}
