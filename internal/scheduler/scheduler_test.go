package scheduler

import (
	"context"
	"testing"
	"time"

	"stealthcompany.com/notesync/internal/importer"
)

type fakeRunner struct {
	called chan struct{}
	err    error
}

func (f *fakeRunner) ImportNotes(ctx context.Context) (*importer.Stats, error) {
	select {
	case f.called <- struct{}{}:
	default:
	}
	return &importer.Stats{}, f.err
}

func TestRunInvokesImportOnTick(t *testing.T) {
	runner := &fakeRunner{called: make(chan struct{}, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, 10*time.Millisecond, runner)
	}()

	select {
	case <-runner.called:
	case <-time.After(2 * time.Second):
		t.Fatal("Import was not triggered by the scheduler")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Scheduler did not stop on context cancel")
	}
}

func TestRunSurvivesRunInProgress(t *testing.T) {
	runner := &fakeRunner{called: make(chan struct{}, 2), err: importer.ErrRunInProgress}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, 10*time.Millisecond, runner)
	}()

	// Two ticks must both reach the runner despite the rejection.
	for i := 0; i < 2; i++ {
		select {
		case <-runner.called:
		case <-time.After(2 * time.Second):
			t.Fatal("Scheduler stopped ticking after a rejected run")
		}
	}

	cancel()
	<-done
}
