package pipeline

import (
	"testing"
	"time"
)

func TestTimingsAccumulate(t *testing.T) {
	var tm Timings
	if tm.Has(StageParse) {
		t.Fatal("empty timings report a stage")
	}
	tm.Add(StageParse, 2*time.Millisecond)
	tm.Add(StageParse, 3*time.Millisecond)
	tm.Add(StageSplit, time.Millisecond)

	if got := tm.Duration(StageParse); got != 5*time.Millisecond {
		t.Errorf("parse = %v, want 5ms", got)
	}
	if got := tm.Sum(StageParse, StageSplit, StageWrite); got != 6*time.Millisecond {
		t.Errorf("sum = %v, want 6ms", got)
	}
	var nilTimings *Timings
	nilTimings.Add(StageRead, time.Second)
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 1)
	Emit(ChannelSink{Ch: ch}, Event{File: "a.js", Status: StatusDone})
	if ev := <-ch; ev.File != "a.js" || ev.Status != StatusDone {
		t.Errorf("unexpected event %+v", ev)
	}

	var got []Stage
	Emit(FuncSink(func(e Event) { got = append(got, e.Stage) }), Event{Stage: StageWrite})
	Emit(nil, Event{Stage: StageRead})
	if len(got) != 1 || got[0] != StageWrite {
		t.Errorf("FuncSink got %v", got)
	}
}
