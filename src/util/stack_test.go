package util

import "testing"

func TestStackPushPopOrder(t *testing.T) {
	var s Stack
	s.Push(1)
	s.Push(2)
	s.Push(3)
	if got := s.Size(); got != 3 {
		t.Fatalf("expected size 3, got %d", got)
	}
	if got := s.Pop(); got != 3 {
		t.Fatalf("expected 3 popped first, got %v", got)
	}
	if got := s.Pop(); got != 2 {
		t.Fatalf("expected 2 popped second, got %v", got)
	}
	if got := s.Peek(); got != 1 {
		t.Fatalf("expected 1 remaining on top, got %v", got)
	}
}

func TestStackGetIsOneIndexedFromTop(t *testing.T) {
	var s Stack
	s.Push("bottom")
	s.Push("middle")
	s.Push("top")
	if got := s.Get(1); got != "top" {
		t.Errorf("Get(1): expected %q, got %v", "top", got)
	}
	if got := s.Get(3); got != "bottom" {
		t.Errorf("Get(3): expected %q, got %v", "bottom", got)
	}
	if got := s.Get(0); got != nil {
		t.Errorf("Get(0): expected nil, got %v", got)
	}
	if got := s.Get(4); got != nil {
		t.Errorf("Get(4): expected nil, got %v", got)
	}
}

func TestStackPopEmpty(t *testing.T) {
	var s Stack
	if got := s.Pop(); got != nil {
		t.Fatalf("expected nil popping an empty stack, got %v", got)
	}
}

func TestLabelGenNamedAndSynthetic(t *testing.T) {
	g := NewLabelGen("sum")
	if got, want := g.Next("entry"), ".L_sum_entry_0"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := g.Next(""), ".L_sum_1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := g.Next("loop"), ".L_sum_loop_2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
