package fiber

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/pulselab/internal/grid"
	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/transform"
)

func taylor(betas []float64, w float64) float64 {
	sum := 0.0
	pow := 1.0
	fact := 1.0
	for m, b := range betas {
		if m > 0 {
			pow *= w
			fact *= float64(m)
		}
		sum += b * pow / fact
	}
	return sum
}

func TestOperatorBranchEquivalence(t *testing.T) {
	g := NewWithT(t)

	gr, err := grid.New(32, 0.1)
	g.Expect(err).NotTo(HaveOccurred())

	betas := []float64{0.3, 0.5, -1.2, 0.07}
	loss := 0.2

	f1 := &Fiber{Loss: []float64{loss}, Betas: betas}
	opTaylor, err := f1.LinearOperator(gr)
	g.Expect(err).NotTo(HaveOccurred())

	// Evaluate the same expansion explicitly on the centered axis.
	centered := transform.Shift(gr.Omega)
	profile := make([]complex128, gr.N)
	for i, w := range centered {
		profile[i] = complex(taylor(betas, w), 0)
	}
	f2 := &Fiber{Loss: []float64{loss}, Profile: profile}
	opProfile, err := f2.LinearOperator(gr)
	g.Expect(err).NotTo(HaveOccurred())

	for k := 0; k < gr.N; k++ {
		g.Expect(real(opProfile[k])).To(BeNumerically("~", real(opTaylor[k]), 1e-12))
		g.Expect(imag(opProfile[k])).To(BeNumerically("~", imag(opTaylor[k]), 1e-9))
	}
}

func TestOperatorLossBroadcast(t *testing.T) {
	g := NewWithT(t)

	gr, err := grid.New(8, 0.5)
	g.Expect(err).NotTo(HaveOccurred())

	f := &Fiber{Loss: []float64{0.4}, Betas: []float64{0}}
	op, err := f.LinearOperator(gr)
	g.Expect(err).NotTo(HaveOccurred())

	for k := range op {
		g.Expect(real(op[k])).To(BeNumerically("~", -0.2, 1e-15))
		g.Expect(imag(op[k])).To(BeZero())
	}
}

func TestOperatorLengthMismatch(t *testing.T) {
	gr, err := grid.New(8, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	f := &Fiber{Profile: make([]complex128, 6)}
	if _, err := f.LinearOperator(gr); !errors.Is(err, optic.ErrDispersionLength) {
		t.Errorf("short profile: expected ErrDispersionLength, got %v", err)
	}

	f2 := &Fiber{Betas: make([]float64, 8)}
	if _, err := f2.LinearOperator(gr); !errors.Is(err, optic.ErrDispersionLength) {
		t.Errorf("oversized taylor: expected ErrDispersionLength, got %v", err)
	}

	f3 := &Fiber{Loss: []float64{1, 2, 3}, Betas: []float64{0}}
	if _, err := f3.LinearOperator(gr); err == nil {
		t.Error("mismatched loss: expected error")
	}
}

func TestAnomalousDispersionSign(t *testing.T) {
	gr, err := grid.New(16, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	f := &Fiber{Betas: []float64{0, 0, -1}}
	op, err := f.LinearOperator(gr)
	if err != nil {
		t.Fatal(err)
	}

	// beta(w) = -w^2/2, so the operator phase is +w^2/2.
	for k, w := range gr.Omega {
		want := w * w / 2
		if math.Abs(imag(op[k])-want) > 1e-9 {
			t.Fatalf("bin %d: got phase %f, want %f", k, imag(op[k]), want)
		}
		if real(op[k]) != 0 {
			t.Fatalf("bin %d: lossless operator has real part %f", k, real(op[k]))
		}
	}
}
