package file

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

// learningPathJSON is the wire shape of one learning path definition.
// Completion state is not part of the definition; it lives in the
// analytics store.
type learningPathJSON struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Difficulty    string   `json:"difficulty"`
	Documents     []string `json:"documents"`
	EstimatedTime int      `json:"estimatedTime"`
}

// LoadPaths reads learning path definitions from a JSON file. A
// missing file simply means no paths are configured; a malformed one
// is an error.
func LoadPaths(path string) ([]domain.LearningPath, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var wire []learningPathJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%s is not a learning path array: %w", path, err)
	}

	paths := make([]domain.LearningPath, 0, len(wire))
	for _, w := range wire {
		paths = append(paths, domain.LearningPath{
			ID:            w.ID,
			Name:          w.Name,
			Difficulty:    w.Difficulty,
			Documents:     w.Documents,
			EstimatedTime: w.EstimatedTime,
		})
	}
	return paths, nil
}
