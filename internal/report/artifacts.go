// Package report writes population run artifacts to disk: JSON results
// for downstream tooling, CSV series for plotting, and a run index for
// discovery.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"geras/internal/model"
	"geras/internal/population"
	"geras/internal/stats"
)

const runIndexFile = "run_index.json"

// RunIndexEntry is one row of the run index.
type RunIndexEntry struct {
	RunID           string  `json:"run_id"`
	Seed            int64   `json:"seed"`
	PopulationSize  int     `json:"population_size"`
	MeanLifespan    float64 `json:"mean_lifespan"`
	CentenarianRate float64 `json:"centenarian_rate"`
	PatternCount    int     `json:"pattern_count"`
	CreatedAtUTC    string  `json:"created_at_utc"`
}

var artifactFiles = []string{
	"results.json",
	"statistics.json",
	"patterns.json",
	"interventions.json",
	"lifespans.csv",
	"survival.csv",
	"patterns.csv",
}

// WriteRunArtifacts writes the run's artifact set under
// baseDir/<run id> and returns the run directory.
func WriteRunArtifacts(baseDir string, record model.RunRecord) (string, error) {
	if record.ID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, record.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "results.json"), record); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "statistics.json"), record.Results.Statistics); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "patterns.json"), record.Results.Patterns); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "interventions.json"), record.Results.Interventions); err != nil {
		return "", err
	}
	if err := writeLifespanSeries(runDir, record.Results.Lives); err != nil {
		return "", err
	}
	if err := writeSurvivalSeries(runDir, record.Results.Lives); err != nil {
		return "", err
	}
	if err := writePatternSeries(runDir, record.Results.Patterns); err != nil {
		return "", err
	}

	return runDir, nil
}

// AppendRunIndex adds or replaces the run's index entry.
func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

// ListRunIndex returns index entries, most recent first.
func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	type indexedEntry struct {
		entry RunIndexEntry
		idx   int
	}
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		indexed[i] = indexedEntry{entry: entries[i], idx: i}
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].entry.CreatedAtUTC == indexed[j].entry.CreatedAtUTC {
			// Prefer later appended entries for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].entry.CreatedAtUTC > indexed[j].entry.CreatedAtUTC
	})

	sorted := make([]RunIndexEntry, 0, len(indexed))
	for _, item := range indexed {
		sorted = append(sorted, item.entry)
	}
	return sorted, nil
}

// ExportRunArtifacts copies a run's artifact set into outDir/<run id>
// and returns the destination directory.
func ExportRunArtifacts(baseDir, runID, outDir string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}

	src := filepath.Join(baseDir, runID)
	if _, err := os.Stat(src); err != nil {
		return "", err
	}

	dst := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", err
	}

	for _, file := range artifactFiles {
		srcPath := filepath.Join(src, file)
		if _, err := os.Stat(srcPath); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		if err := copyFile(srcPath, filepath.Join(dst, file)); err != nil {
			return "", err
		}
	}

	return dst, nil
}

// ReadRunRecord loads the full results payload of a run.
func ReadRunRecord(baseDir, runID string) (model.RunRecord, bool, error) {
	path := filepath.Join(baseDir, runID, "results.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.RunRecord{}, false, nil
		}
		return model.RunRecord{}, false, err
	}

	var record model.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.RunRecord{}, false, err
	}
	return record, true, nil
}

// ReadStatistics loads just the statistics artifact of a run.
func ReadStatistics(baseDir, runID string) (population.Statistics, bool, error) {
	path := filepath.Join(baseDir, runID, "statistics.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return population.Statistics{}, false, nil
		}
		return population.Statistics{}, false, err
	}

	var statistics population.Statistics
	if err := json.Unmarshal(data, &statistics); err != nil {
		return population.Statistics{}, false, err
	}
	return statistics, true, nil
}

func writeLifespanSeries(runDir string, lives []population.LifeSummary) error {
	file, err := os.Create(filepath.Join(runDir, "lifespans.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"id", "lifespan", "death_cause", "lifestyle_score", "age_acceleration"}); err != nil {
		return err
	}
	for _, life := range lives {
		if err := writer.Write([]string{
			life.ID,
			strconv.FormatFloat(life.Lifespan, 'f', -1, 64),
			life.DeathCause.String(),
			strconv.FormatFloat(life.LifestyleScore, 'f', -1, 64),
			strconv.FormatFloat(life.FinalAgeAcceleration, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeSurvivalSeries(runDir string, lives []population.LifeSummary) error {
	file, err := os.Create(filepath.Join(runDir, "survival.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	lifespans := make([]float64, 0, len(lives))
	for _, life := range lives {
		lifespans = append(lifespans, life.Lifespan)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"age", "survival"}); err != nil {
		return err
	}
	for _, point := range stats.SurvivalCurve(lifespans) {
		if err := writer.Write([]string{
			strconv.FormatFloat(point.Age, 'f', -1, 64),
			strconv.FormatFloat(point.Survival, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writePatternSeries(runDir string, patterns []population.CausalPattern) error {
	file, err := os.Create(filepath.Join(runDir, "patterns.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"cause", "effect", "strength", "confidence", "supporting_lives", "description"}); err != nil {
		return err
	}
	for _, pattern := range patterns {
		if err := writer.Write([]string{
			pattern.Cause.Kind.String(),
			pattern.Effect.Kind.String(),
			strconv.FormatFloat(pattern.Strength, 'f', -1, 64),
			strconv.FormatFloat(pattern.Confidence, 'f', -1, 64),
			strconv.Itoa(pattern.SupportingLives),
			pattern.Description,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
