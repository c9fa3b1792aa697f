package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"

	classifier "github.com/baditaflorin/go_complaint_classifier"
	"github.com/baditaflorin/go_complaint_classifier/internal/config"
)

func main() {
	trainPath := flag.String("train", "", "labeled training CSV file (may be .gz)")
	predictPath := flag.String("predict", "", "unlabeled inference CSV file (may be .gz)")
	configPath := flag.String("config", "", "YAML run configuration (optional)")
	logFile := flag.String("log-file", "", "log file path (empty = stdout)")
	warmUp := flag.Bool("warm-up", false, "prime pools before processing")
	flag.Parse()

	if *trainPath == "" {
		fmt.Fprintln(os.Stderr, "usage: classifier -train <file> [-predict <file>] [-config <file>]")
		os.Exit(2)
	}

	logger, err := createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
	}

	opts := []classifier.Option{
		classifier.WithLogger(logger),
		classifier.WithMinDocFreq(cfg.MinDocFreq),
		classifier.WithMaxSparsity(cfg.MaxSparsity),
		classifier.WithFolds(cfg.Folds),
		classifier.WithSeed(cfg.Seed),
		classifier.WithWorkers(cfg.Workers),
		classifier.WithParallelNormalization(cfg.ParallelNormalize),
		classifier.WithOptimizedNormalizer(),
		classifier.WithExtraStopWords(cfg.ExtraStopWords...),
		classifier.WithWarmUp(*warmUp),
	}
	if cfg.ProductColumn != "" || cfg.NarrativeColumn != "" {
		product := cfg.ProductColumn
		if product == "" {
			product = "Product"
		}
		narrative := cfg.NarrativeColumn
		if narrative == "" {
			narrative = "Consumer complaint narrative"
		}
		opts = append(opts, classifier.WithColumns(product, narrative))
	}

	p, err := classifier.New(opts...)
	if err != nil {
		logger.Error("Failed to create pipeline", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	training, dropped, err := p.LoadTraining(*trainPath)
	if err != nil {
		logger.Error("Failed to load training file", "path", *trainPath, "error", err)
		os.Exit(1)
	}
	logger.Info("Training corpus ready",
		"records", len(training),
		"dropped_missing_narrative", dropped,
	)

	trained, err := p.Train(ctx, training, cfg.Grid)
	if err != nil {
		logger.Error("Training failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("vocabulary size: %d\n", trained.Vocab.Size())
	if trained.Search != nil {
		fmt.Printf("best hyperparameters: %v (mean CV accuracy %.4f)\n",
			trained.Search.BestParams, trained.Search.BestScore)
	}
	fmt.Printf("cross-validation mean accuracy (k=%d): %.4f\n",
		len(trained.CV.FoldAccuracies), trained.CV.MeanAccuracy)

	// Confusion breakdown of the final model over the training corpus.
	predicted, err := p.Predict(ctx, trained, training)
	if err != nil {
		logger.Error("Training-set evaluation failed", "error", err)
		os.Exit(1)
	}
	actual := make([]string, len(training))
	for i, rec := range training {
		actual[i] = rec.Label
	}
	report, err := classifier.Evaluate(predicted, actual)
	if err != nil {
		logger.Error("Training-set evaluation failed", "error", err)
		os.Exit(1)
	}
	fmt.Print(report.String())

	if *predictPath == "" {
		return
	}

	inference, droppedInf, err := p.LoadInference(*predictPath)
	if err != nil {
		logger.Error("Failed to load inference file", "path", *predictPath, "error", err)
		os.Exit(1)
	}
	logger.Info("Inference corpus ready",
		"records", len(inference),
		"dropped_missing_narrative", droppedInf,
	)

	labels, err := p.Predict(ctx, trained, inference)
	if err != nil {
		logger.Error("Prediction failed", "error", err)
		os.Exit(1)
	}
	for _, label := range labels {
		fmt.Println(label)
	}
}

// createLogger creates and configures a logger the same way for stdout
// and file targets; file logs are JSON for later ingestion.
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	jsonFormat := false
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
		jsonFormat = true
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  jsonFormat,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB
		MaxFileSize: 10 * 1024 * 1024, // 10MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
