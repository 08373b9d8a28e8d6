package vision

import (
	"context"
	"errors"
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"

	"github.com/Sahil31312/plant-disease-classifier/config"
)

var (
	// ErrModelUnavailable is returned by every inference call when the
	// model failed to load at process start.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrInferenceTimeout is returned when a single inference call exceeds
	// its deadline.
	ErrInferenceTimeout = errors.New("inference timed out")
)

// Predictor runs one normalized tensor through the model and returns the
// raw probability vector. Entries are non-negative but need not sum to 1.
type Predictor interface {
	Predict(ctx context.Context, t *Tensor) ([]float32, error)
	Available() bool
}

// ONNXPredictor wraps a pre-trained ONNX classification model.
type ONNXPredictor struct {
	session    *ort.DynamicAdvancedSession
	numClasses int
	log        *zap.Logger
}

// NewONNXPredictor loads the model once. Callers should fall back to
// Unavailable{} when this fails so requests fail fast instead of crashing.
func NewONNXPredictor(cfg config.ModelConfig, numClasses int, log *zap.Logger) (*ONNXPredictor, error) {
	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.Path,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", cfg.Path, err)
	}

	log.Info("model loaded",
		zap.String("path", cfg.Path),
		zap.Int("input_size", cfg.InputSize),
		zap.Int("classes", numClasses),
	)
	return &ONNXPredictor{session: session, numClasses: numClasses, log: log}, nil
}

func (p *ONNXPredictor) Available() bool { return true }

func (p *ONNXPredictor) Predict(ctx context.Context, t *Tensor) ([]float32, error) {
	input, err := ort.NewTensor(ort.NewShape(t.Shape...), t.Data)
	if err != nil {
		return nil, fmt.Errorf("build input tensor: %w", err)
	}

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(p.numClasses)))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("build output tensor: %w", err)
	}

	// The goroutine owns both tensors: a timed-out caller walks away while
	// the run drains in the background and frees them itself.
	resultCh := make(chan []float32, 1)
	errCh := make(chan error, 1)
	go func() {
		defer input.Destroy()
		defer output.Destroy()
		if err := p.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
			errCh <- err
			return
		}
		probs := make([]float32, p.numClasses)
		copy(probs, output.GetData())
		resultCh <- probs
	}()

	select {
	case <-ctx.Done():
		return nil, ErrInferenceTimeout
	case err := <-errCh:
		return nil, fmt.Errorf("model inference: %w", err)
	case probs := <-resultCh:
		return probs, nil
	}
}

func (p *ONNXPredictor) Close() {
	if p.session != nil {
		p.session.Destroy()
	}
}

// Unavailable stands in for a model that failed to load.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Predict(context.Context, *Tensor) ([]float32, error) {
	return nil, ErrModelUnavailable
}
