package config

import "github.com/edgeshelf/edgeshelf/internal/models"

// LoadTuning loads tuning.yaml. If the file doesn't exist, returns defaults.
// Non-positive values fall back to their defaults individually.
func LoadTuning(path string) (*models.Tuning, error) {
	t, err := LoadYAMLOrDefault(path, models.NewTuning)
	if err != nil {
		return nil, err
	}
	t.Sanitize()
	return t, nil
}

// SaveTuning writes tuning.yaml.
func SaveTuning(path string, t *models.Tuning) error {
	return SaveYAML(path, t)
}
