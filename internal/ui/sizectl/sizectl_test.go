package sizectl

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
	"github.com/llehouerou/pagethumbs/internal/ui/testutil"
)

func newHarness(size int) *testutil.Harness {
	return testutil.NewHarness(New(size))
}

func model(t *testing.T, h *testutil.Harness) Model {
	t.Helper()
	m, ok := h.Model().(Model)
	if !ok {
		t.Fatalf("model is %T, want sizectl.Model", h.Model())
	}
	return m
}

func TestNew_PositionsFromStoredSize(t *testing.T) {
	tests := []struct {
		size     int
		wantStep float64
		wantSize int
	}{
		{128, 2, 128},
		{448, 10, 448},
		{1024, 18, 1024},
		{10, 0, 64},
		{9999, 18, 1024},
		{100, 1.125, 100}, // between stops
	}
	for _, tt := range tests {
		m := New(tt.size)
		if m.Step() != tt.wantStep {
			t.Errorf("New(%d).Step() = %v, want %v", tt.size, m.Step(), tt.wantStep)
		}
		if m.Size() != tt.wantSize {
			t.Errorf("New(%d).Size() = %d, want %d", tt.size, m.Size(), tt.wantSize)
		}
	}
}

func TestLarger_WalksLadder(t *testing.T) {
	h := newHarness(64)
	want := []int{96, 128, 160, 192, 224, 256, 304, 352, 400, 448, 512, 576, 640, 704, 768, 832, 928, 1024}

	for i, size := range want {
		h.SendRunes("l")
		if got := model(t, h).Size(); got != size {
			t.Fatalf("after %d steps size = %d, want %d", i+1, got, size)
		}
		msg, ok := h.LastMsg().(ChangedMsg)
		if !ok || msg.Size != size {
			t.Fatalf("after %d steps message = %#v, want ChangedMsg{%d}", i+1, h.LastMsg(), size)
		}
	}

	// Already at the top: no further change
	count := h.CommandCount()
	h.SendKey(tea.KeyRight)
	if model(t, h).Size() != thumbnail.MaxSize {
		t.Error("size moved past MaxSize")
	}
	if h.CommandCount() != count {
		t.Error("no message expected when size does not change")
	}
}

func TestSmaller_SnapsToStop(t *testing.T) {
	h := newHarness(100) // step 1.125

	h.SendKey(tea.KeyLeft)
	if got := model(t, h).Size(); got != 96 {
		t.Errorf("size = %d, want 96", got)
	}

	h.SendRunes("h")
	if got := model(t, h).Size(); got != 64 {
		t.Errorf("size = %d, want 64", got)
	}

	h.SendRunes("h")
	if got := model(t, h).Size(); got != 64 {
		t.Errorf("size below minimum: %d", got)
	}
}

func TestLarger_FromBetweenStops(t *testing.T) {
	h := newHarness(100)
	h.SendRunes("+")
	if got := model(t, h).Size(); got != 128 {
		t.Errorf("size = %d, want 128", got)
	}
}

func TestMinMax(t *testing.T) {
	h := newHarness(300)

	h.SendKey(tea.KeyEnd)
	if got := model(t, h).Size(); got != thumbnail.MaxSize {
		t.Errorf("end: size = %d, want %d", got, thumbnail.MaxSize)
	}

	h.SendKey(tea.KeyHome)
	if got := model(t, h).Size(); got != thumbnail.MinSize {
		t.Errorf("home: size = %d, want %d", got, thumbnail.MinSize)
	}
}

func TestConfirm(t *testing.T) {
	h := newHarness(128)
	h.SendRunes("l")
	h.SendKey(tea.KeyEnter)

	msg, ok := h.LastMsg().(ConfirmedMsg)
	if !ok {
		t.Fatalf("message = %T, want ConfirmedMsg", h.LastMsg())
	}
	if msg.Size != 160 {
		t.Errorf("confirmed size = %d, want 160", msg.Size)
	}
	if model(t, h).Active() {
		t.Error("control should be inactive after confirm")
	}

	// Input is ignored afterwards
	h.SendRunes("l")
	if got := model(t, h).Size(); got != 160 {
		t.Errorf("size changed after confirm: %d", got)
	}
}

func TestCancel_RestoresInitial(t *testing.T) {
	h := newHarness(448)
	h.SendRunes("l")
	h.SendRunes("l")
	h.SendKey(tea.KeyEscape)

	msg, ok := h.LastMsg().(CancelledMsg)
	if !ok {
		t.Fatalf("message = %T, want CancelledMsg", h.LastMsg())
	}
	if msg.Size != 448 {
		t.Errorf("cancelled size = %d, want 448", msg.Size)
	}
	if got := model(t, h).Size(); got != 448 {
		t.Errorf("size after cancel = %d, want 448", got)
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	h := newHarness(128)
	if cmd := h.SendRunes("x"); cmd != nil {
		t.Error("unbound key should not produce a command")
	}
}

func TestView(t *testing.T) {
	h := newHarness(256)
	h.Send(tea.WindowSizeMsg{Width: 30, Height: 10})

	if !h.ViewContains("Thumbnail size") {
		t.Error("view should contain title")
	}
	if !h.ViewContains("256 × 256 px") {
		t.Errorf("view should show size:\n%s", h.View())
	}
	if !h.ViewContains("256 KiB") {
		t.Errorf("view should show canvas memory:\n%s", h.View())
	}
	if !h.ViewContains("█████████░░░░░░░░░░░░░░░░░") {
		t.Errorf("bar should be 9 of 26 cells filled:\n%s", h.View())
	}
}
