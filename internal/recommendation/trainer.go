package recommendation

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

var ErrNoTrainingData = errors.New("no training data")

// Sample is one labelled example. Label is a soft target in [0,1].
type Sample struct {
	Features FeatureVector
	Label    float64
}

// TrainConfig controls a training run.
type TrainConfig struct {
	Hidden          []int
	Epochs          int
	BatchSize       int
	ValidationSplit float64
	LearningRate    float64
	Seed            uint64

	// OnEpoch, when set, is called after every epoch.
	OnEpoch func(epoch int, trainLoss, validationLoss float64)
}

// DefaultTrainConfig mirrors the production training schedule.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Hidden:          DefaultHidden,
		Epochs:          100,
		BatchSize:       32,
		ValidationSplit: 0.2,
		LearningRate:    0.001,
		Seed:            42,
	}
}

const (
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-7
	lossEpsilon = 1e-7
)

// Train fits a fresh model to samples with Adam on binary cross-entropy.
// The trailing ValidationSplit fraction of samples is held out; the rest is
// shuffled each epoch with a PRNG seeded from cfg.Seed, so runs are repeatable.
func Train(samples []Sample, cfg TrainConfig) (*Model, error) {
	if len(samples) == 0 {
		return nil, ErrNoTrainingData
	}
	cfg = withDefaults(cfg)

	trainCount := int(math.Floor(float64(len(samples)) * (1 - cfg.ValidationSplit)))
	if trainCount < 1 {
		trainCount = len(samples)
	}
	train := samples[:trainCount]
	validation := samples[trainCount:]

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	model := NewModel(cfg.Hidden, rng)
	opt := newAdam(model, cfg.LearningRate)
	grads := newGradients(model)
	acts := make([][]float64, len(model.Layers)+1)
	for i, l := range model.Layers {
		acts[i+1] = make([]float64, l.Out)
	}
	deltas := make([][]float64, len(model.Layers))
	for i, l := range model.Layers {
		deltas[i] = make([]float64, l.Out)
	}

	order := make([]int, len(train))
	for i := range order {
		order[i] = i
	}

	valLoss := math.NaN()
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for start := 0; start < len(order); start += cfg.BatchSize {
			end := min(start+cfg.BatchSize, len(order))
			grads.zero()
			for _, idx := range order[start:end] {
				s := train[idx]
				model.forward(s.Features[:], acts)
				backprop(model, acts, deltas, grads, s.Label)
			}
			opt.step(model, grads, float64(end-start))
		}

		trainLoss := meanLoss(model, train)
		if len(validation) > 0 {
			valLoss = meanLoss(model, validation)
		}
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(epoch, trainLoss, valLoss)
		}
	}

	model.TrainedAt = time.Now().UTC()
	model.Samples = len(samples)
	if math.IsNaN(valLoss) {
		valLoss = meanLoss(model, train)
	}
	model.ValidationLoss = valLoss
	return model, nil
}

func withDefaults(cfg TrainConfig) TrainConfig {
	def := DefaultTrainConfig()
	if len(cfg.Hidden) == 0 {
		cfg.Hidden = def.Hidden
	}
	if cfg.Epochs < 1 {
		cfg.Epochs = def.Epochs
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.ValidationSplit < 0 || cfg.ValidationSplit >= 1 {
		cfg.ValidationSplit = def.ValidationSplit
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	return cfg
}

// backprop accumulates the gradient of BCE(sigmoid) for one sample into grads.
func backprop(m *Model, acts [][]float64, deltas [][]float64, grads *gradients, label float64) {
	last := len(m.Layers) - 1

	// sigmoid output with cross-entropy collapses to (p - y)
	deltas[last][0] = acts[last+1][0] - label

	for li := last; li >= 0; li-- {
		l := m.Layers[li]
		in := acts[li]
		d := deltas[li]
		gw := grads.weights[li]
		gb := grads.biases[li]
		for o := 0; o < l.Out; o++ {
			gb[o] += d[o]
			row := gw[o*l.In : (o+1)*l.In]
			for i, v := range in {
				row[i] += d[o] * v
			}
		}
		if li == 0 {
			break
		}
		prev := deltas[li-1]
		for i := 0; i < l.In; i++ {
			if in[i] <= 0 {
				prev[i] = 0
				continue
			}
			sum := 0.0
			for o := 0; o < l.Out; o++ {
				sum += l.Weights[o*l.In+i] * d[o]
			}
			prev[i] = sum
		}
	}
}

func meanLoss(m *Model, samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range samples {
		total += crossEntropy(m.Predict(s.Features), s.Label)
	}
	return total / float64(len(samples))
}

func crossEntropy(p, y float64) float64 {
	p = math.Min(math.Max(p, lossEpsilon), 1-lossEpsilon)
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

type gradients struct {
	weights [][]float64
	biases  [][]float64
}

func newGradients(m *Model) *gradients {
	g := &gradients{
		weights: make([][]float64, len(m.Layers)),
		biases:  make([][]float64, len(m.Layers)),
	}
	for i, l := range m.Layers {
		g.weights[i] = make([]float64, len(l.Weights))
		g.biases[i] = make([]float64, len(l.Biases))
	}
	return g
}

func (g *gradients) zero() {
	for i := range g.weights {
		clear(g.weights[i])
		clear(g.biases[i])
	}
}

type adam struct {
	lr     float64
	t      int
	mW, vW [][]float64
	mB, vB [][]float64
}

func newAdam(m *Model, lr float64) *adam {
	a := &adam{lr: lr}
	for _, l := range m.Layers {
		a.mW = append(a.mW, make([]float64, len(l.Weights)))
		a.vW = append(a.vW, make([]float64, len(l.Weights)))
		a.mB = append(a.mB, make([]float64, len(l.Biases)))
		a.vB = append(a.vB, make([]float64, len(l.Biases)))
	}
	return a
}

// step applies one bias-corrected Adam update using gradients averaged over batch.
func (a *adam) step(m *Model, g *gradients, batch float64) {
	a.t++
	c1 := 1 - math.Pow(adamBeta1, float64(a.t))
	c2 := 1 - math.Pow(adamBeta2, float64(a.t))
	for li := range m.Layers {
		update(m.Layers[li].Weights, g.weights[li], a.mW[li], a.vW[li], a.lr, c1, c2, batch)
		update(m.Layers[li].Biases, g.biases[li], a.mB[li], a.vB[li], a.lr, c1, c2, batch)
	}
}

func update(params, grad, mom, vel []float64, lr, c1, c2, batch float64) {
	for i := range params {
		gi := grad[i] / batch
		mom[i] = adamBeta1*mom[i] + (1-adamBeta1)*gi
		vel[i] = adamBeta2*vel[i] + (1-adamBeta2)*gi*gi
		params[i] -= lr * (mom[i] / c1) / (math.Sqrt(vel[i]/c2) + adamEpsilon)
	}
}
