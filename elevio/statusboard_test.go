package elevio

import (
	"reflect"
	"testing"

	"lift/common"
)

func TestStatusBoardForwardsAndTracks(t *testing.T) {
	rec := &Recorder{}
	board := NewStatusBoard(rec, 8)

	board.SetDoor(common.DOOR_LOCK)
	board.SetMotor(common.MOTOR_UP)
	board.ShowState("MOVING_UP")
	board.ShowException(common.WARNING, "slow")

	want := []string{"door lock", "motor up", "show MOVING_UP", `exception warning "slow"`}
	if got := rec.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("forwarded calls = %q, want %q", got, want)
	}

	st, err := board.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if st.Door != common.DOOR_LOCK || st.Motor != common.MOTOR_UP || st.Label != "MOVING_UP" {
		t.Errorf("status = %+v", st)
	}
	if st.Level != common.WARNING || st.Message != "slow" {
		t.Errorf("exception = %s %q", common.LevelToString(st.Level), st.Message)
	}
	if st.Seq != 4 {
		t.Errorf("Seq = %d, want 4", st.Seq)
	}
	if !reflect.DeepEqual(st.Recent, want) {
		t.Errorf("Recent = %q, want %q", st.Recent, want)
	}
}

func TestStatusBoardHistoryIsBounded(t *testing.T) {
	board := NewStatusBoard(&Recorder{}, 2)
	board.ShowState("F0_OPENED")
	board.ShowState("F0_CLOSED")
	board.ShowState("F0_OPENED")

	st, err := board.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := []string{"show F0_CLOSED", "show F0_OPENED"}
	if !reflect.DeepEqual(st.Recent, want) {
		t.Fatalf("Recent = %q, want %q", st.Recent, want)
	}
}

func TestStatusBoardSnapshotIsACopy(t *testing.T) {
	board := NewStatusBoard(&Recorder{}, 4)
	board.ShowState("F0_CLOSED")

	st, err := board.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	st.Recent[0] = "tampered"

	again, err := board.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if again.Recent[0] != "show F0_CLOSED" {
		t.Fatalf("board history changed through a snapshot: %q", again.Recent)
	}
}
