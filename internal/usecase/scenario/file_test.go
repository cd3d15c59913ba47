package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
	scenariov1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/scenario/v1"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/errors"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to drop a scenario document into a temp dir
func createTestScenarioFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.NewLogger()
	require.NoError(t, err)
	return log
}

// Test 1: Load a well-formed scenario file
func TestFileLoader_Load(t *testing.T) {
	path := createTestScenarioFile(t, `
label: fixture
bids:
  ex1-0.00024:
    price: 0.95
    volume: 10
  ex2-0.0005:
    price: 0.98
    volume: 5
asks:
  ex3-0.0002:
    price: 1.01
    volume: 2
`)

	scenario, err := NewFileLoader(path, newTestLogger(t)).Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, scenario)
	assert.Equal(t, "fixture", scenario.Label)
	assert.Equal(t, 2, len(scenario.Bids))
	assert.Equal(t, 1, len(scenario.Asks))
	assert.Equal(t, 0.95, scenario.Bids["ex1-0.00024"].Price)
	assert.Equal(t, int64(10), scenario.Bids["ex1-0.00024"].Volume)
	assert.Equal(t, 1.01, scenario.Asks["ex3-0.0002"].Price)
}

// Test 2: Unlabeled documents report under their path
func TestFileLoader_DefaultLabel(t *testing.T) {
	path := createTestScenarioFile(t, `
bids:
  ex1-0:
    price: 1.0
    volume: 1
asks: {}
`)

	scenario, err := NewFileLoader(path, newTestLogger(t)).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, path, scenario.Label)
}

// Test 3: Load failure modes
func TestFileLoader_ErrorCases(t *testing.T) {
	log := newTestLogger(t)

	t.Run("Missing file", func(t *testing.T) {
		loader := NewFileLoader(filepath.Join(t.TempDir(), "absent.yaml"), log)

		scenario, err := loader.Load(context.Background())

		assert.Nil(t, scenario)
		require.Error(t, err)
		assert.EqualError(t, err, string(errors.ScenarioReadError))
	})

	t.Run("Malformed document", func(t *testing.T) {
		path := createTestScenarioFile(t, "bids: [not, a, map\n")
		loader := NewFileLoader(path, log)

		scenario, err := loader.Load(context.Background())

		assert.Nil(t, scenario)
		require.Error(t, err)
		assert.EqualError(t, err, string(errors.ScenarioParseError))
	})

	t.Run("Negative volume fails validation", func(t *testing.T) {
		path := createTestScenarioFile(t, `
label: bad
bids:
  ex1-0:
    price: 1.0
    volume: -4
asks: {}
`)
		loader := NewFileLoader(path, log)

		scenario, err := loader.Load(context.Background())

		assert.Nil(t, scenario)
		require.Error(t, err)
		assert.EqualError(t, err, string(errors.ScenarioValidationError))
		assert.ErrorIs(t, err, scenariov1.ErrNegativeVolume)
	})

	t.Run("Non-positive price fails validation", func(t *testing.T) {
		path := createTestScenarioFile(t, `
label: bad
bids: {}
asks:
  ex1-0:
    price: 0
    volume: 4
`)
		loader := NewFileLoader(path, log)

		_, err := loader.Load(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, scenariov1.ErrInvalidPrice)
	})
}

// Test 4: Sample loader serves a valid five-venue scenario
func TestSampleLoader_Load(t *testing.T) {
	scenario, err := NewSampleLoader().Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, scenario)
	assert.Equal(t, SampleLabel, scenario.Label)
	assert.Equal(t, 5, len(scenario.Bids))
	assert.Equal(t, 5, len(scenario.Asks))
	assert.NoError(t, scenario.Validate())

	assert.Equal(t, 0.95, scenario.Bids["ex1-0.00024"].Price)
	assert.Equal(t, int64(3), scenario.Asks["ex5-0"].Volume)
}

// Test 5: Every sample load is a fresh copy
func TestSampleLoader_FreshCopies(t *testing.T) {
	loader := NewSampleLoader()

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	first.Bids["ex1-0.00024"] = quotev1.RawQuote{}

	second, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.95, second.Bids["ex1-0.00024"].Price)
	assert.Equal(t, int64(10), second.Bids["ex1-0.00024"].Volume)
}
