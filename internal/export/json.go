package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/novanotes/internal/mission"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Completed  int        `json:"completed"`
	Todos      []jsonTodo `json:"todos"`
}

type jsonTodo struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	Priority      string `json:"priority"`
	Category      string `json:"category,omitempty"`
	Completed     bool   `json:"completed"`
	CreatedAt     string `json:"created_at"`
	DueDate       string `json:"due_date,omitempty"`
	CompletedAt   string `json:"completed_at,omitempty"`
	EstimatedMins int    `json:"estimated_minutes,omitempty"`
	Recurring     bool   `json:"recurring,omitempty"`
}

func ToJSON(todos []mission.Todo, path string) error {
	counts := mission.CountsOf(todos)
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      counts.All,
		Completed:  counts.Completed,
		Todos:      make([]jsonTodo, 0, len(todos)),
	}

	for _, t := range todos {
		export.Todos = append(export.Todos, jsonTodo{
			ID:            t.ID,
			Text:          t.Text,
			Priority:      string(t.Priority),
			Category:      t.Category,
			Completed:     t.Completed,
			CreatedAt:     t.CreatedAt.Local().Format(time.RFC3339),
			DueDate:       formatOptional(t.DueDate),
			CompletedAt:   formatOptional(t.CompletedAt),
			EstimatedMins: t.EstimatedTime,
			Recurring:     t.IsRecurring,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
