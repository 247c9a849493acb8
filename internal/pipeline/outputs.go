package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
)

// writeOutputs dumps the report and both roll-up tables to a local directory
// for inspection. Purely optional; the archived partitions are the real
// output.
func writeOutputs(dir string, reportJSON []byte, daily []model.DailyRollup, perPlant []model.PlantRollup) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "summary.json"), reportJSON, 0o644); err != nil {
		return fmt.Errorf("writing summary.json: %w", err)
	}
	if err := writeDailyCSV(filepath.Join(dir, "daily.csv"), daily); err != nil {
		return err
	}
	return writePerPlantCSV(filepath.Join(dir, "per_plant.csv"), perPlant)
}

func writeDailyCSV(path string, daily []model.DailyRollup) error {
	records := [][]string{{"day", "readings", "plants", "botanists", "soil_mean", "temp_mean"}}
	for _, d := range daily {
		records = append(records, []string{
			d.Day,
			strconv.FormatInt(d.Readings, 10),
			strconv.FormatInt(d.Plants, 10),
			strconv.FormatInt(d.Botanists, 10),
			formatFloat(d.SoilMean),
			formatFloat(d.TempMean),
		})
	}
	return writeCSV(path, records)
}

func writePerPlantCSV(path string, perPlant []model.PlantRollup) error {
	records := [][]string{{
		"plant_id", "readings",
		"soil_min", "soil_mean", "soil_max",
		"temp_min", "temp_mean", "temp_max",
		"last_seen",
	}}
	for _, p := range perPlant {
		lastSeen := ""
		if p.LastSeen != nil {
			lastSeen = p.LastSeen.UTC().Format("2006-01-02 15:04:05")
		}
		records = append(records, []string{
			strconv.Itoa(p.PlantID),
			strconv.FormatInt(p.Readings, 10),
			formatFloat(p.SoilMin),
			formatFloat(p.SoilMean),
			formatFloat(p.SoilMax),
			formatFloat(p.TempMin),
			formatFloat(p.TempMean),
			formatFloat(p.TempMax),
			lastSeen,
		})
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
