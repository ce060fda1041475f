// Package emb runs a pre-trained sentence-embedding model (MiniLM-style
// transformer exported to ONNX) through ONNX Runtime and a HuggingFace
// tokenizer.json. The encoder is initialized once and is read-only
// afterwards.
package emb

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Config locates the model artifacts.
type Config struct {
	// OrtDLL is the path to the onnxruntime shared library. Empty uses
	// the platform default search path.
	OrtDLL string
	// ModelPath is the ONNX model file.
	ModelPath string
	// TokenizerPath is the HuggingFace tokenizer.json next to the model.
	TokenizerPath string
	// MaxSeqLen caps the token sequence fed to the model.
	MaxSeqLen int
}

const defaultMaxSeqLen = 512

// Encoder produces fixed-length sentence vectors via mean pooling over
// the model's last hidden state, L2-normalized.
type Encoder struct {
	mu      sync.Mutex
	session *ort.DynamicAdvancedSession
	tk      *tokenizer.Tokenizer
	maxLen  int
}

// Init loads the tokenizer and creates the ONNX Runtime session.
func (e *Encoder) Init(cfg Config) error {
	if cfg.ModelPath == "" {
		return errors.New("model path is required")
	}
	if cfg.TokenizerPath == "" {
		return errors.New("tokenizer path is required")
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = defaultMaxSeqLen
	}
	if cfg.OrtDLL != "" {
		ort.SetSharedLibraryPath(cfg.OrtDLL)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}
	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return fmt.Errorf("load tokenizer: %w", err)
	}
	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		nil,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	e.session = session
	e.tk = tk
	e.maxLen = cfg.MaxSeqLen
	return nil
}

// Close releases the ONNX Runtime session.
func (e *Encoder) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		_ = e.session.Destroy()
		e.session = nil
	}
	e.tk = nil
}

// Encode tokenizes the text and returns its normalized sentence vector.
func (e *Encoder) Encode(text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil || e.tk == nil {
		return nil, errors.New("encoder is not initialized")
	}
	encoding, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	ids, mask, typeIds := truncate(encoding.Ids, e.maxLen), truncate(encoding.AttentionMask, e.maxLen), truncate(encoding.TypeIds, e.maxLen)
	if len(ids) == 0 {
		return nil, errors.New("tokenizer produced no tokens")
	}

	shape := ort.NewShape(1, int64(len(ids)))
	inputIds, err := ort.NewTensor(shape, toInt64(ids))
	if err != nil {
		return nil, fmt.Errorf("input_ids tensor: %w", err)
	}
	defer inputIds.Destroy()
	attention, err := ort.NewTensor(shape, toInt64(mask))
	if err != nil {
		return nil, fmt.Errorf("attention_mask tensor: %w", err)
	}
	defer attention.Destroy()
	tokenTypes, err := ort.NewTensor(shape, toInt64(typeIds))
	if err != nil {
		return nil, fmt.Errorf("token_type_ids tensor: %w", err)
	}
	defer tokenTypes.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{inputIds, attention, tokenTypes}, outputs); err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}
	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", outputs[0])
	}
	defer hidden.Destroy()

	dims := hidden.GetShape()
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected output rank %d", len(dims))
	}
	seqLen := int(dims[1])
	hiddenSize := int(dims[2])
	return meanPool(hidden.GetData(), mask, seqLen, hiddenSize), nil
}

// meanPool averages token vectors weighted by the attention mask and
// L2-normalizes the result.
func meanPool(data []float32, mask []int, seqLen, hiddenSize int) []float32 {
	vec := make([]float32, hiddenSize)
	var count float32
	for t := 0; t < seqLen && t < len(mask); t++ {
		if mask[t] == 0 {
			continue
		}
		count++
		row := data[t*hiddenSize : (t+1)*hiddenSize]
		for i, v := range row {
			vec[i] += v
		}
	}
	if count == 0 {
		return vec
	}
	var sum float64
	for i := range vec {
		vec[i] /= count
		sum += float64(vec[i]) * float64(vec[i])
	}
	if sum > 0 {
		inv := float32(1 / math.Sqrt(sum))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}

func truncate(vals []int, max int) []int {
	if len(vals) > max {
		return vals[:max]
	}
	return vals
}

func toInt64(vals []int) []int64 {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(v)
	}
	return out
}
