package sentiment

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/captionflow/internal/models"
)

const sentimentModelName = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"

// TransformerAnnotator runs a pre-trained SST-2 text classification model
// through an ONNX runtime session. The model is downloaded on first start
// and reused from modelDir afterwards.
type TransformerAnnotator struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

func NewTransformerAnnotator(modelDir string) (*TransformerAnnotator, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	slog.Info("[TransformerAnnotator] Resolving sentiment model",
		slog.String("model", sentimentModelName),
		slog.String("dir", modelDir))

	modelPath, err := hugot.DownloadModel(sentimentModelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to download sentiment model: %w", err)
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentAnalysisPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize classification pipeline: %w", err)
	}

	slog.Info("[TransformerAnnotator] Pipeline ready", slog.String("path", modelPath))

	return &TransformerAnnotator{session: session, pipeline: pipeline}, nil
}

func (t *TransformerAnnotator) Annotate(text string) (models.SentimentResult, error) {
	output, err := t.pipeline.RunPipeline([]string{truncateForAnalysis(text)})
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("classification failed: %w", err)
	}

	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return models.SentimentResult{}, fmt.Errorf("classifier returned no output")
	}

	best := output.ClassificationOutputs[0][0]
	for _, candidate := range output.ClassificationOutputs[0][1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	return models.SentimentResult{
		Label: best.Label,
		Score: float64(best.Score),
	}, nil
}

// Close releases the ONNX runtime session.
func (t *TransformerAnnotator) Close() error {
	return t.session.Destroy()
}
