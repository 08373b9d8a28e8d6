package vision

import (
	"context"
	"testing"
)

func TestArgMax(t *testing.T) {
	idx, val := ArgMax([]float32{0.1, 0.7, 0.05, 0.15})
	if idx != 1 {
		t.Errorf("ArgMax index = %d, want 1", idx)
	}
	if val != 0.7 {
		t.Errorf("ArgMax value = %f, want 0.7", val)
	}
}

func TestArgMaxTiesToLowestIndex(t *testing.T) {
	idx, _ := ArgMax([]float32{0.4, 0.4, 0.2})
	if idx != 0 {
		t.Errorf("ArgMax tie index = %d, want 0", idx)
	}
}

func TestArgMaxEmpty(t *testing.T) {
	idx, val := ArgMax(nil)
	if idx != -1 || val != 0 {
		t.Errorf("ArgMax(nil) = (%d, %f), want (-1, 0)", idx, val)
	}
}

func TestTopK(t *testing.T) {
	top := TopK([]float32{0.1, 0.7, 0.05, 0.15}, 3)
	if len(top) != 3 {
		t.Fatalf("len(top) = %d, want 3", len(top))
	}
	wantOrder := []int{1, 3, 0}
	for i, want := range wantOrder {
		if top[i].Index != want {
			t.Errorf("top[%d].Index = %d, want %d", i, top[i].Index, want)
		}
	}
	for i := 1; i < len(top); i++ {
		if top[i].Confidence > top[i-1].Confidence {
			t.Errorf("top-k not descending at %d", i)
		}
	}
}

func TestTopKStableTies(t *testing.T) {
	top := TopK([]float32{0.3, 0.3, 0.3, 0.1}, 3)
	wantOrder := []int{0, 1, 2}
	for i, want := range wantOrder {
		if top[i].Index != want {
			t.Errorf("tie order: top[%d].Index = %d, want %d", i, top[i].Index, want)
		}
	}
}

func TestTopKClampsK(t *testing.T) {
	top := TopK([]float32{0.9, 0.1}, 5)
	if len(top) != 2 {
		t.Errorf("len(top) = %d, want 2", len(top))
	}
}

func TestUnavailablePredictorFailsFast(t *testing.T) {
	var p Predictor = Unavailable{}
	if p.Available() {
		t.Error("Unavailable.Available() should be false")
	}
	_, err := p.Predict(context.Background(), &Tensor{})
	if err != ErrModelUnavailable {
		t.Errorf("err = %v, want ErrModelUnavailable", err)
	}
}
