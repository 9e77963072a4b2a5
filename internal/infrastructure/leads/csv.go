// Package leads stores the append-only log of quiz leads.
package leads

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/nutriquiz/backend/internal/domain"
)

var csvHeader = []string{"timestamp", "name", "email", "whatsapp", "goal", "activity", "weight_kg", "height_cm", "age_years"}

// CSVRepository appends leads to a CSV file. The header is written once, when the file is created.
type CSVRepository struct {
	path  string
	mutex sync.Mutex
}

// NewCSVRepository creates the parent directory of path if needed
func NewCSVRepository(path string) (*CSVRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lead directory: %w", err)
	}
	return &CSVRepository{path: path}, nil
}

// Append writes one row
func (r *CSVRepository) Append(ctx context.Context, lead *domain.Lead) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open lead log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat lead log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write(leadRow(lead)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// List reads every row back, oldest first. A missing file is an empty log.
func (r *CSVRepository) List(ctx context.Context) ([]domain.Lead, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Lead{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open lead log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(csvHeader)

	leads := []domain.Lead{}
	for line := 0; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read lead log: %w", err)
		}
		if line == 0 {
			continue
		}

		lead, err := parseLeadRow(row)
		if err != nil {
			return nil, fmt.Errorf("lead log line %d: %w", line+1, err)
		}
		lead.ID = uint(line)
		leads = append(leads, *lead)
	}
	return leads, nil
}

func leadRow(l *domain.Lead) []string {
	return []string{
		l.CreatedAt.Format(time.RFC3339),
		l.Name,
		l.Email,
		l.WhatsApp,
		string(l.Goal),
		string(l.ActivityLevel),
		strconv.FormatFloat(l.WeightKg, 'f', -1, 64),
		strconv.FormatFloat(l.HeightCm, 'f', -1, 64),
		strconv.Itoa(l.AgeYears),
	}
}

func parseLeadRow(row []string) (*domain.Lead, error) {
	createdAt, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return nil, err
	}
	weight, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return nil, err
	}
	height, err := strconv.ParseFloat(row[7], 64)
	if err != nil {
		return nil, err
	}
	age, err := strconv.Atoi(row[8])
	if err != nil {
		return nil, err
	}

	return &domain.Lead{
		CreatedAt:     createdAt,
		Name:          row[1],
		Email:         row[2],
		WhatsApp:      row[3],
		Goal:          domain.Goal(row[4]),
		ActivityLevel: domain.ActivityLevel(row[5]),
		WeightKg:      weight,
		HeightCm:      height,
		AgeYears:      age,
	}, nil
}
