package embedding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"unicode/utf8"

	"google.golang.org/genai"
)

var (
	// ErrEncoderUnavailable means the embedding client could not be built at
	// all, e.g. no API key configured or client construction failed.
	ErrEncoderUnavailable = errors.New("embedding encoder unavailable")
	// ErrEncodingFailure means the client is up but a vector computation failed.
	ErrEncodingFailure = errors.New("embedding computation failed")
)

// maxEncodeBytes caps the text sent per embedding request; resumes and job
// corpora beyond this carry no additional ranking signal.
const maxEncodeBytes = 40000

// Encoder turns text into fixed-dimension vectors.
type Encoder interface {
	EncodeText(ctx context.Context, text string) ([]float32, error)
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// GenAIEncoder encodes text with a pretrained Gemini embedding model. The
// underlying client is built lazily exactly once per process; concurrent
// first callers either wait for that construction or observe its result.
type GenAIEncoder struct {
	apiKey string
	model  string
	logger *log.Logger

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGenAIEncoder(apiKey, model string, logger *log.Logger) *GenAIEncoder {
	if logger == nil {
		logger = log.Default()
	}
	return &GenAIEncoder{apiKey: apiKey, model: model, logger: logger}
}

func (e *GenAIEncoder) ensureClient(ctx context.Context) (*genai.Client, error) {
	e.once.Do(func() {
		if e.apiKey == "" {
			e.initErr = fmt.Errorf("%w: no API key configured", ErrEncoderUnavailable)
			return
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  e.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			e.initErr = fmt.Errorf("%w: %v", ErrEncoderUnavailable, err)
			return
		}
		e.client = client
		e.logger.Printf("[Encoder] embedding model %s ready", e.model)
	})
	return e.client, e.initErr
}

func (e *GenAIEncoder) EncodeText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *GenAIEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	client, err := e.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.Text(truncateUTF8(t, maxEncodeBytes))...)
	}

	res, err := client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	if res == nil || len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", ErrEncodingFailure, len(texts), embeddingCount(res))
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("%w: empty embedding at index %d", ErrEncodingFailure, i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// truncateUTF8 shortens s to at most max bytes without splitting a rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func embeddingCount(res *genai.EmbedContentResponse) int {
	if res == nil {
		return 0
	}
	return len(res.Embeddings)
}
