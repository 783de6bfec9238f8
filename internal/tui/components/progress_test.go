package components

import (
	"strings"
	"testing"
)

func TestProgress_View_ZeroPercent(t *testing.T) {
	p := NewProgress(0, 10, 8)
	result := p.View()

	// Should show all empty: □□□□□□□□ 0%
	if !strings.HasPrefix(result, "□□□□□□□□") {
		t.Errorf("expected all empty boxes, got: %s", result)
	}
	if !strings.HasSuffix(result, "0%") {
		t.Errorf("expected 0%%, got: %s", result)
	}
}

func TestProgress_View_FiftyPercent(t *testing.T) {
	p := NewProgress(5, 10, 8)
	result := p.View()

	// Should show half filled: ■■■■□□□□ 50%
	if !strings.HasPrefix(result, "■■■■□□□□") {
		t.Errorf("expected half filled ■■■■□□□□, got: %s", result)
	}
	if !strings.HasSuffix(result, "50%") {
		t.Errorf("expected 50%%, got: %s", result)
	}
}

func TestProgress_View_HundredPercent(t *testing.T) {
	p := NewProgress(10, 10, 8)
	result := p.View()

	if !strings.HasPrefix(result, "■■■■■■■■") {
		t.Errorf("expected all filled boxes, got: %s", result)
	}
	if !strings.HasSuffix(result, "100%") {
		t.Errorf("expected 100%%, got: %s", result)
	}
}

func TestProgress_View_ZeroTotal(t *testing.T) {
	// No tasks means an empty bar at 0%, not a missing bar.
	p := NewProgress(0, 0, 8)
	result := p.View()

	if result != "□□□□□□□□ 0%" {
		t.Errorf("expected empty bar at 0%% for zero total, got: %s", result)
	}
}

func TestProgress_View_ZeroWidth(t *testing.T) {
	p := NewProgress(5, 10, 0)
	if result := p.View(); result != "" {
		t.Errorf("expected empty string for zero width, got: %s", result)
	}
}

func TestProgress_View_ClampsCurrent(t *testing.T) {
	if result := NewProgress(-5, 10, 8).View(); !strings.HasSuffix(result, "0%") {
		t.Errorf("expected 0%% for negative current, got: %s", result)
	}
	if result := NewProgress(15, 10, 8).View(); !strings.HasSuffix(result, "100%") {
		t.Errorf("expected 100%% for current > total, got: %s", result)
	}
}

func TestProgress_View_Rounding(t *testing.T) {
	tests := []struct {
		current  int
		total    int
		width    int
		expected string
	}{
		{2, 4, 4, "■■□□ 50%"},
		{3, 10, 10, "■■■□□□□□□□ 30%"},
		{1, 3, 6, "■■□□□□ 33%"},
		{2, 3, 6, "■■■■□□ 67%"},
	}

	for _, tt := range tests {
		result := NewProgress(tt.current, tt.total, tt.width).View()
		if result != tt.expected {
			t.Errorf("Progress(%d, %d, %d).View() = %q, want %q",
				tt.current, tt.total, tt.width, result, tt.expected)
		}
	}
}
