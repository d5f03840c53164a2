package recommendation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

var (
	ErrShapeMismatch = errors.New("model shape does not match feature vector")
)

// DefaultHidden is the hidden layer layout used in production.
var DefaultHidden = []int{128, 64, 32}

// Layer is one dense layer. Weights are row-major: Weights[o*In+i].
type Layer struct {
	In      int       `json:"in"`
	Out     int       `json:"out"`
	Weights []float64 `json:"weights"`
	Biases  []float64 `json:"biases"`
}

// Model is a feed-forward network with ReLU hidden layers and a single
// sigmoid output. A Model is immutable once published to the engine.
type Model struct {
	Version        int64     `json:"version"`
	TrainedAt      time.Time `json:"trained_at"`
	Samples        int       `json:"samples"`
	ValidationLoss float64   `json:"validation_loss"`
	Layers         []Layer   `json:"layers"`
}

// NewModel builds an untrained network with Glorot-uniform weights.
func NewModel(hidden []int, rng *rand.Rand) *Model {
	sizes := append([]int{FeatureCount}, hidden...)
	sizes = append(sizes, 1)

	m := &Model{Layers: make([]Layer, 0, len(sizes)-1)}
	for i := 0; i < len(sizes)-1; i++ {
		in, out := sizes[i], sizes[i+1]
		limit := math.Sqrt(6.0 / float64(in+out))
		l := Layer{
			In:      in,
			Out:     out,
			Weights: make([]float64, in*out),
			Biases:  make([]float64, out),
		}
		for w := range l.Weights {
			l.Weights[w] = (rng.Float64()*2 - 1) * limit
		}
		m.Layers = append(m.Layers, l)
	}
	return m
}

// Validate checks that the layers chain from FeatureCount inputs to one output.
func (m *Model) Validate() error {
	if m == nil || len(m.Layers) == 0 {
		return fmt.Errorf("%w: model has no layers", ErrShapeMismatch)
	}
	if m.Layers[0].In != FeatureCount {
		return fmt.Errorf("%w: input width %d, want %d", ErrShapeMismatch, m.Layers[0].In, FeatureCount)
	}
	for i, l := range m.Layers {
		if len(l.Weights) != l.In*l.Out || len(l.Biases) != l.Out {
			return fmt.Errorf("%w: layer %d has inconsistent parameter counts", ErrShapeMismatch, i)
		}
		if i > 0 && m.Layers[i-1].Out != l.In {
			return fmt.Errorf("%w: layer %d input %d does not follow output %d", ErrShapeMismatch, i, l.In, m.Layers[i-1].Out)
		}
	}
	if last := m.Layers[len(m.Layers)-1]; last.Out != 1 {
		return fmt.Errorf("%w: output width %d, want 1", ErrShapeMismatch, last.Out)
	}
	return nil
}

// Predict returns the acceptance likelihood in [0,1]. It panics when the
// model input width differs from FeatureCount; snapshots are validated before use.
func (m *Model) Predict(f FeatureVector) float64 {
	if len(m.Layers) == 0 || m.Layers[0].In != FeatureCount {
		panic(ErrShapeMismatch)
	}
	acts := m.forward(f[:], nil)
	return acts[len(acts)-1][0]
}

// forward runs the network and returns the activations of every layer,
// starting with the input. buf, when non-nil, is reused.
func (m *Model) forward(x []float64, buf [][]float64) [][]float64 {
	if buf == nil {
		buf = make([][]float64, len(m.Layers)+1)
		for i, l := range m.Layers {
			buf[i+1] = make([]float64, l.Out)
		}
	}
	buf[0] = x

	last := len(m.Layers) - 1
	for li, l := range m.Layers {
		in, out := buf[li], buf[li+1]
		for o := 0; o < l.Out; o++ {
			sum := l.Biases[o]
			row := l.Weights[o*l.In : (o+1)*l.In]
			for i, v := range in {
				sum += row[i] * v
			}
			if li == last {
				out[o] = sigmoid(sum)
			} else {
				out[o] = relu(sum)
			}
		}
	}
	return buf
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
