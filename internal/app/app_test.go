package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dshills/keyremap/internal/config"
	"github.com/dshills/keyremap/internal/device"
	"github.com/dshills/keyremap/internal/dispatcher"
	"github.com/dshills/keyremap/internal/input/key"
	"github.com/dshills/keyremap/internal/input/keymap"
)

// scriptedInput replays events, then blocks until closed.
type scriptedInput struct {
	mu     sync.Mutex
	events []dispatcher.RawEvent
	closed chan struct{}
	once   sync.Once
	block  bool
}

func newScriptedInput(block bool, events ...dispatcher.RawEvent) *scriptedInput {
	return &scriptedInput{events: events, closed: make(chan struct{}), block: block}
}

func (s *scriptedInput) ReadEvent(ctx context.Context) (dispatcher.RawEvent, error) {
	s.mu.Lock()
	if len(s.events) > 0 {
		ev := s.events[0]
		s.events = s.events[1:]
		s.mu.Unlock()
		return ev, nil
	}
	s.mu.Unlock()

	if !s.block {
		return dispatcher.RawEvent{}, io.EOF
	}
	<-s.closed
	return dispatcher.RawEvent{}, dispatcher.ErrSourceClosed
}

func (s *scriptedInput) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

func (s *scriptedInput) Name() string         { return "scripted" }
func (s *scriptedInput) KeyCodes() []key.Code { return nil }

type recordingOutput struct {
	mu      sync.Mutex
	keys    []key.Output
	syncs   int
	failAt  int
	closed  int
	written int
}

func (r *recordingOutput) WriteKey(code key.Code, value int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.written++
	if r.failAt > 0 && r.written >= r.failAt {
		return errors.New("write /dev/uinput: no such device")
	}
	r.keys = append(r.keys, key.Output{Code: code, Value: key.Transition(value)})
	return nil
}

func (r *recordingOutput) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncs++
	return nil
}

func (r *recordingOutput) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

type fakeSession struct {
	in          *scriptedInput
	out         *recordingOutput
	closeInputs int
	closes      int
}

func (f *fakeSession) Input() device.InputDevice   { return f.in }
func (f *fakeSession) Output() device.OutputDevice { return f.out }
func (f *fakeSession) CloseInput() error           { f.closeInputs++; return f.in.Close() }
func (f *fakeSession) Close() error {
	f.closes++
	_ = f.out.Close()
	return f.in.Close()
}

func keyEv(code key.Code, value int32) dispatcher.RawEvent {
	return dispatcher.RawEvent{Type: dispatcher.TypeKey, Code: uint16(code), Value: value}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Device.Path = "/dev/input/event3"
	return cfg
}

func newTestApp(t *testing.T, sess *fakeSession, gotOpts *device.SessionOptions) *Application {
	t.Helper()
	app, err := New(testConfig(), Options{
		OpenSession: func(ctx context.Context, opts device.SessionOptions) (Session, error) {
			if gotOpts != nil {
				*gotOpts = opts
			}
			return sess, nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return app
}

func TestNewRequiresDevice(t *testing.T) {
	_, err := New(config.Default(), Options{})
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("New() error = %v, want ErrNoDevice", err)
	}
	var ce *ComponentError
	if !errors.As(err, &ce) || ce.Component != "config" {
		t.Errorf("New() error = %v, want config ComponentError", err)
	}
}

func TestNewRejectsBadBindings(t *testing.T) {
	cfg := testConfig()
	cfg.Remap.Bindings = []keymap.Spec{{Key: "SPACE"}}

	_, err := New(cfg, Options{})
	if !errors.Is(err, keymap.ErrEmptyBinding) {
		t.Errorf("New() error = %v, want ErrEmptyBinding", err)
	}
}

func TestRunUntilInputEnds(t *testing.T) {
	sess := &fakeSession{
		in: newScriptedInput(false,
			keyEv(key.CodeSpace, 1),
			keyEv(key.CodeC, 1),
			keyEv(key.CodeC, 0),
			keyEv(key.CodeSpace, 0),
		),
		out: &recordingOutput{},
	}
	var opts device.SessionOptions
	app := newTestApp(t, sess, &opts)

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []key.Output{
		key.Press(key.CodeLeftCtrl),
		key.Press(key.CodeC),
		key.Release(key.CodeC),
		key.Release(key.CodeLeftCtrl),
	}
	if len(sess.out.keys) != len(want) {
		t.Fatalf("outputs = %v, want %v", sess.out.keys, want)
	}
	for i := range want {
		if sess.out.keys[i] != want[i] {
			t.Errorf("output[%d] = %v, want %v", i, sess.out.keys[i], want[i])
		}
	}
	if sess.out.syncs != len(want) {
		t.Errorf("syncs = %d, want %d", sess.out.syncs, len(want))
	}
	if sess.closes != 1 {
		t.Errorf("session closes = %d, want 1", sess.closes)
	}

	if opts.Path != "/dev/input/event3" || opts.Name != device.DefaultName {
		t.Errorf("session options = %+v", opts)
	}
	if len(opts.ExtraCodes) == 0 {
		t.Error("session options carry no remap target codes")
	}

	if s := app.Summary(); s.Engine.Holds != 1 || s.Dispatcher.Outputs != 4 {
		t.Errorf("Summary() holds=%d outputs=%d, want 1, 4", s.Engine.Holds, s.Dispatcher.Outputs)
	}
}

func TestShutdownReleasesHeldModifier(t *testing.T) {
	sess := &fakeSession{
		in: newScriptedInput(true,
			keyEv(key.CodeSpace, 1),
			keyEv(key.CodeC, 1),
		),
		out: &recordingOutput{},
	}
	app := newTestApp(t, sess, nil)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		sess.out.mu.Lock()
		n := len(sess.out.keys)
		sess.out.mu.Unlock()
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for outputs")
		}
		time.Sleep(5 * time.Millisecond)
	}

	app.Shutdown()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Shutdown")
	}

	last := sess.out.keys[len(sess.out.keys)-1]
	if last != key.Release(key.CodeLeftCtrl) {
		t.Errorf("last output = %v, want LEFTCTRL Up", last)
	}
	if sess.closeInputs == 0 {
		t.Error("Shutdown did not close the input device")
	}
	if app.IsRunning() {
		t.Error("IsRunning() = true after Run returned")
	}
}

func TestRunOutputFailure(t *testing.T) {
	sess := &fakeSession{
		in:  newScriptedInput(false, keyEv(key.CodeSpace, 1), keyEv(key.CodeC, 1)),
		out: &recordingOutput{failAt: 1},
	}
	app := newTestApp(t, sess, nil)

	err := app.Run(context.Background())
	if !errors.Is(err, dispatcher.ErrOutputIO) {
		t.Fatalf("Run() error = %v, want ErrOutputIO", err)
	}
	var ce *ComponentError
	if !errors.As(err, &ce) || ce.Component != "dispatcher" {
		t.Errorf("Run() error = %v, want dispatcher ComponentError", err)
	}
	if sess.closes != 1 {
		t.Errorf("session closes = %d, want 1", sess.closes)
	}
}

func TestRunOpenFailure(t *testing.T) {
	openErr := &device.SetupError{Stage: device.StageInput, Path: "/dev/input/event3", Err: device.ErrNotKeyboard}
	app, err := New(testConfig(), Options{
		OpenSession: func(context.Context, device.SessionOptions) (Session, error) {
			return nil, openErr
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = app.Run(context.Background())
	if !errors.Is(err, device.ErrNotKeyboard) {
		t.Errorf("Run() error = %v, want ErrNotKeyboard", err)
	}
}

func TestShutdownBeforeRun(t *testing.T) {
	opened := false
	app, err := New(testConfig(), Options{
		OpenSession: func(context.Context, device.SessionOptions) (Session, error) {
			opened = true
			return nil, errors.New("unexpected")
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	app.Shutdown()
	if err := app.Run(context.Background()); err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if opened {
		t.Error("Run() opened devices after Shutdown")
	}
}

func TestWriteBindings(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBindings(&buf, keymap.DefaultTable(), 200); err != nil {
		t.Fatalf("WriteBindings() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"SPACE", "LEFTCTRL", "CAPSLOCK", "ESC", "GRAVE", "3 bindings, 1 dual-role, hold window 200ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteBindings() output missing %q:\n%s", want, out)
		}
	}
}

func TestComponentError(t *testing.T) {
	inner := errors.New("boom")
	err := NewComponentError("device", "open", inner)

	if err.Error() != "device: open: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is(err, inner) = false")
	}
	if !errors.Is(err, err) {
		t.Error("errors.Is(err, err) = false")
	}
	if errors.Is(err, NewComponentError("device", "open", inner)) {
		t.Error("distinct ComponentErrors should not match")
	}

	tests := []struct {
		err  *ComponentError
		want string
	}{
		{&ComponentError{Component: "device"}, "device"},
		{&ComponentError{Component: "device", Action: "close"}, "device: close"},
		{&ComponentError{Component: "device", Err: inner}, "device: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
