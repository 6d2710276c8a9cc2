package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/novanotes/internal/mission"
)

func ToCSV(todos []mission.Todo, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Text", "Priority", "Category", "Completed", "Created", "Due", "Completed At", "Estimate (min)", "Estimate", "Recurring"}); err != nil {
		return err
	}

	for _, t := range todos {
		row := []string{
			t.ID,
			t.Text,
			string(t.Priority),
			t.Category,
			strconv.FormatBool(t.Completed),
			t.CreatedAt.Local().Format(time.RFC3339),
			formatOptional(t.DueDate),
			formatOptional(t.CompletedAt),
			strconv.Itoa(t.EstimatedTime),
			formatMinutes(t.EstimatedTime),
			strconv.FormatBool(t.IsRecurring),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}

func formatMinutes(mins int) string {
	if mins <= 0 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// DefaultFilename names an export taken at now, e.g. novanotes-20260314.csv.
func DefaultFilename(format string, now time.Time) string {
	return fmt.Sprintf("novanotes-%s.%s", now.Format("20060102"), format)
}
