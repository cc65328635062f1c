package geometry

import "testing"

func TestPresetResolvesKnownNames(t *testing.T) {
	for _, name := range []string{"", "ansi30", "ortholinear30"} {
		if _, err := Preset(name); err != nil {
			t.Fatalf("preset %q: %v", name, err)
		}
	}
}

func TestPresetRejectsUnknownName(t *testing.T) {
	if _, err := Preset("doesnotexist"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestBuildAssignsHandsAndFingersSymmetrically(t *testing.T) {
	idx, err := Build(ANSI30())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(idx.Keys) != 30 {
		t.Fatalf("len(Keys) = %d, want 30", len(idx.Keys))
	}

	leftCount, rightCount := 0, 0
	for _, k := range idx.Keys {
		if k.Hand == HandLeft {
			leftCount++
			if k.Finger > FingerLeftIndex {
				t.Errorf("left-hand key has right-hand finger %d", k.Finger)
			}
		} else {
			rightCount++
			if k.Finger < FingerRightIndex {
				t.Errorf("right-hand key has left-hand finger %d", k.Finger)
			}
		}
	}
	if leftCount != rightCount {
		t.Fatalf("hand split not symmetric: left=%d right=%d", leftCount, rightCount)
	}
}

func TestBuildRejectsZeroSpread(t *testing.T) {
	positions := ANSI30()
	for i := range positions {
		positions[i].X = 5
	}
	if _, err := Build(positions); err == nil {
		t.Fatal("expected error for zero horizontal spread")
	}
}

func TestBuildRejectsEmpty(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Fatal("expected error for empty position set")
	}
}

func TestHandAssignmentIsStaggerIndependent(t *testing.T) {
	// ANSI30 and Ortholinear30 differ only in row stagger; every key index
	// lands on the same hand in both.
	a, _ := Build(ANSI30())
	b, _ := Build(Ortholinear30())
	for i := range a.Keys {
		if a.Keys[i].Hand != b.Keys[i].Hand {
			t.Fatalf("index %d: hand differs between presets", i)
		}
	}
}

func TestHomeCenterMovesOutwardFromCenter(t *testing.T) {
	if HomeCenter(FingerLeftIndex) >= 0 {
		t.Fatal("left index home center should be negative")
	}
	if HomeCenter(FingerRightIndex) <= 0 {
		t.Fatal("right index home center should be positive")
	}
	if HomeCenter(FingerLeftPinky) >= HomeCenter(FingerLeftIndex) {
		t.Fatal("left pinky home center should be further left than left index")
	}
}
