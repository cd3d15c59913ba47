package scenario

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	scenariov1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/scenario/v1"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/errors"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/logger"
)

// FileLoader loads a scenario document from a YAML file on disk.
type FileLoader struct {
	path   string
	logger *logger.Logger
}

// NewFileLoader creates a new file loader for the given path.
func NewFileLoader(path string, logger *logger.Logger) *FileLoader {
	return &FileLoader{
		path:   path,
		logger: logger,
	}
}

// Load reads, decodes and validates the scenario file. Nothing partially
// loads: any failure surfaces as an error and the previous state of the
// caller stays intact.
func (l *FileLoader) Load(ctx context.Context) (*scenariov1.Scenario, error) {
	l.logger.InfoContext(ctx, fmt.Sprintf("Loading scenario from %s", l.path), logger.Field{
		Key:   "path",
		Value: l.path,
	})

	data, err := os.ReadFile(l.path)
	if err != nil {
		l.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "path",
			Value: l.path,
		})
		return nil, errors.NewTracerCode(errors.ScenarioReadError).Wrap(err)
	}

	var scenario scenariov1.Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		l.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "path",
			Value: l.path,
		})
		return nil, errors.NewTracerCode(errors.ScenarioParseError).Wrap(err)
	}

	if err := scenario.Validate(); err != nil {
		l.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "path",
			Value: l.path,
		}, logger.Field{
			Key:   "label",
			Value: scenario.Label,
		})
		return nil, errors.NewTracerCode(errors.ScenarioValidationError).Wrap(err)
	}

	// Unlabeled documents report under their path
	if scenario.Label == "" {
		scenario.Label = l.path
	}

	l.logger.InfoContext(ctx, fmt.Sprintf("Scenario %q loaded", scenario.Label), logger.Field{
		Key:   "bids",
		Value: len(scenario.Bids),
	}, logger.Field{
		Key:   "asks",
		Value: len(scenario.Asks),
	})

	return &scenario, nil
}
