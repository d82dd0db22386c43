package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/programme-lv/pal/internal/job"
)

// JobFiles are the files an inspected job was written to.
type JobFiles struct {
	Input    string
	Actual   string
	Expected string
}

// WriteJobFiles dumps the input and both outputs of e under
// <testInfoDir>/<job id>/.
func WriteJobFiles(testInfoDir string, e job.Entry) (JobFiles, error) {
	dir := filepath.Join(testInfoDir, strconv.Itoa(e.Job.ID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return JobFiles{}, fmt.Errorf("cannot create output directory to save job logs: %w", err)
	}

	files := JobFiles{
		Input:    filepath.Join(dir, "in.txt"),
		Actual:   filepath.Join(dir, "actual_out.txt"),
		Expected: filepath.Join(dir, "expected_out.txt"),
	}
	writes := []struct {
		path string
		data []byte
	}{
		{files.Input, e.Job.Input},
		{files.Actual, e.Job.ActualOutput},
		{files.Expected, e.Job.ExpectedOutput},
	}
	for _, w := range writes {
		if err := os.WriteFile(w.path, w.data, 0644); err != nil {
			return JobFiles{}, fmt.Errorf("cannot write to %s: %w", w.path, err)
		}
	}
	return files, nil
}
