package effort

import (
	"sync"
	"testing"

	"keyopt/internal/model"
)

func TestEvaluatorIsSafeForConcurrentUse(t *testing.T) {
	geo := mustGeo(t)
	freq := freqForAlphabet("qwertyuiopasdfghjkl;zxcvbnm,./")
	ev, err := New(geo, []string{"the quick brown fox jumps over the lazy dog"}, freq)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	layout := qwertyLayout()

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ev.Evaluate(layout, model.DefaultWeights()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent Evaluate failed: %v", err)
	}
}
