package carousel

import "testing"

func TestDeckJumpToEveryIndex(t *testing.T) {
	for n := 1; n <= 6; n++ {
		d := NewDeck(make([]string, n))
		for i := 0; i < n; i++ {
			if !d.JumpTo(i) {
				t.Fatalf("n=%d JumpTo(%d) rejected", n, i)
			}
			if got := d.Current(); got != i {
				t.Fatalf("n=%d JumpTo(%d) current=%d", n, i, got)
			}
		}
	}
}

func TestDeckJumpToOutOfRangeIgnored(t *testing.T) {
	d := NewDeck([]string{"a", "b", "c"})
	d.JumpTo(1)
	for _, i := range []int{-1, 3, 10} {
		if d.JumpTo(i) {
			t.Fatalf("JumpTo(%d) accepted", i)
		}
		if got := d.Current(); got != 1 {
			t.Fatalf("JumpTo(%d) moved current to %d", i, got)
		}
	}
}

func TestDeckNextPreviousWrap(t *testing.T) {
	for n := 1; n <= 5; n++ {
		d := NewDeck(make([]string, n))
		if got := d.Previous(); got != n-1 {
			t.Fatalf("n=%d Previous from 0 = %d, want %d", n, got, n-1)
		}
		if got := d.Next(); got != 0 {
			t.Fatalf("n=%d Next from %d = %d, want 0", n, n-1, got)
		}
		for i := 1; i < n; i++ {
			if got := d.Next(); got != i {
				t.Fatalf("n=%d Next step %d = %d", n, i, got)
			}
		}
	}
}

func TestDeckEmptyNavigationIsNoop(t *testing.T) {
	d := NewDeck(nil)
	if d.Next() != 0 || d.Previous() != 0 || d.JumpTo(0) {
		t.Fatalf("empty deck navigation should stay at 0")
	}
}

func TestDeckDisplayRuleFollowsCurrent(t *testing.T) {
	d := NewDeck([]string{"a", "b", "c"})
	d.JumpTo(2)
	for i := 0; i < 3; i++ {
		disp, ok := d.Display(i)
		if !ok {
			t.Fatalf("Display(%d) missing", i)
		}
		want := i == 2
		if disp.Visible != want || disp.Interactive != want || disp.Layer != baseLayer {
			t.Fatalf("Display(%d)=%+v, want visible=%v on base layer", i, disp, want)
		}
	}
}

func TestForceVisibleRestoresOnRelease(t *testing.T) {
	d := NewDeck([]string{"a", "b", "c"})
	release, ok := d.forceVisible(2)
	if !ok {
		t.Fatalf("forceVisible(2) rejected")
	}
	disp, _ := d.Display(2)
	if !disp.Visible || disp.Layer != topLayer {
		t.Fatalf("forced display=%+v", disp)
	}
	f, _ := d.frame(2)
	if f.Opacity != 1 {
		t.Fatalf("forced frame opacity=%v", f.Opacity)
	}

	release()
	release()
	disp, _ = d.Display(2)
	if disp.Visible || disp.Layer != baseLayer {
		t.Fatalf("display after release=%+v", disp)
	}
}

func TestForceVisibleSurvivesNavigation(t *testing.T) {
	d := NewDeck([]string{"a", "b", "c"})
	release, _ := d.forceVisible(1)
	d.JumpTo(1)
	d.JumpTo(2)
	release()
	if disp, _ := d.Display(2); !disp.Visible {
		t.Fatalf("navigation during override lost: %+v", disp)
	}
	if disp, _ := d.Display(1); disp.Visible {
		t.Fatalf("released slide still visible: %+v", disp)
	}
}
