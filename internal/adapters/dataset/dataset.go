// Package dataset reads labeled CSV training data.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

const ctxCheckEvery = 256

// Dataset is a feature matrix with its binary labels. Feature columns are kept
// in file order, which Load verifies against the schema.
type Dataset struct {
	Schema  schema.Schema
	Columns []string
	X       [][]float64
	Y       []int
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Y) }

// Positives counts rows labeled 1.
func (d *Dataset) Positives() int {
	var n int
	for _, v := range d.Y {
		n += v
	}
	return n
}

// Split shuffles row indexes with seed and moves ratio of them into a holdout
// set. The same seed always yields the same split.
func (d *Dataset) Split(ratio float64, seed int64) (train, holdout *Dataset) {
	train = &Dataset{Schema: d.Schema, Columns: d.Columns}
	holdout = &Dataset{Schema: d.Schema, Columns: d.Columns}
	if ratio <= 0 || ratio >= 1 || d.Len() < 2 {
		train.X, train.Y = d.X, d.Y
		return train, holdout
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(d.Len())))
	order := rng.Perm(d.Len())
	cut := int(float64(d.Len()) * ratio)
	cut = max(1, min(cut, d.Len()-1))
	for i, idx := range order {
		target := train
		if i < cut {
			target = holdout
		}
		target.X = append(target.X, d.X[idx])
		target.Y = append(target.Y, d.Y[idx])
	}
	return train, holdout
}

// Load reads the CSV file at path. The header must contain s.LabelColumn; the
// remaining columns must equal the schema columns in order.
func Load(ctx context.Context, path string, s schema.Schema) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingDataset, path, err)
	}
	defer f.Close()

	d, err := Read(ctx, f, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Read parses CSV data from r. See Load.
func Read(ctx context.Context, r io.Reader, s schema.Schema) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header", ErrMissingDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedRow, err)
	}

	label := -1
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == s.LabelColumn {
			label = i
			continue
		}
		columns = append(columns, name)
	}
	if label < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingLabel, s.LabelColumn)
	}
	if err := s.MatchColumns(columns); err != nil {
		return nil, err
	}

	d := &Dataset{Schema: s, Columns: columns}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}
		line, _ := cr.FieldPos(0)
		if len(d.Y)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row := make([]float64, 0, len(columns))
		var y int
		for i, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %q is not numeric", ErrMalformedRow, line, header[i], cell)
			}
			if i == label {
				if v != 0 && v != 1 {
					return nil, fmt.Errorf("%w: line %d: label %v is not 0 or 1", ErrMalformedRow, line, v)
				}
				y = int(v)
				continue
			}
			row = append(row, v)
		}
		d.X = append(d.X, row)
		d.Y = append(d.Y, y)
	}
	if d.Len() == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMissingDataset)
	}
	return d, nil
}
