package util

import "testing"

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer(10)
	rb.Push([]float32{1, 2, 3, 4, 5, 6})
	if rb.Len() != 6 {
		t.Fatal("len", rb.Len())
	}
	rb.Push([]float32{7, 8, 9, 10, 11, 12})

	g := make([]float64, 10)
	rb.Latest(g)
	exp := []float64{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}

	g = make([]float64, 4)
	rb.Latest(g)
	exp = []float64{9, 10, 11, 12}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}
	if rb.Len() != 10 {
		t.Fatal("len", rb.Len())
	}
}

func TestRingBufferOversizedPush(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Push([]float32{1, 2, 3, 4, 5, 6, 7})
	g := make([]float64, 4)
	rb.Latest(g)
	exp := []float64{4, 5, 6, 7}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}
}

func TestRingBufferPartial(t *testing.T) {
	rb := NewRingBuffer(5)
	rb.Push([]float32{1, 2})
	g := make([]float64, 4)
	rb.Latest(g)
	exp := []float64{0, 0, 1, 2}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}
}
