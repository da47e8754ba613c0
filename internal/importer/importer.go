package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketledger/internal/domain"
	"marketledger/internal/logging"
)

// ProductStore is the subset of the product repository the importer needs.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads product rows and writes them to the catalog store.
type CSVImporter struct {
	reader *csv.Reader
	store  ProductStore
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewCSVImporter(r io.Reader, store ProductStore, logger *zap.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		store:  store,
		logger: logging.OrNop(logger),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID:  uuid.NewString,
	}
}

type csvRow struct {
	line          int
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal
	AttachmentURL string
	Author        domain.Principal
}

// Run imports every row and returns the number of products written. Rows
// with an id that already exists replace the editable fields and keep the
// record's author, counters and reviews.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("read headers: missing name column")
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		row, err := parseRow(record, index, line)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}

	i.logger.Info("import finished", zap.Int("imported", imported))
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	var p domain.Product
	existing, err := i.lookup(ctx, row.ID)
	if err != nil {
		return fmt.Errorf("line %d: lookup product %q: %w", row.line, row.ID, err)
	}

	if existing != nil {
		p = *existing
		ts := i.now()
		p.UpdatedAt = &ts
	} else {
		id := row.ID
		if id == "" {
			id = i.newID()
		}
		p = domain.Product{
			ID:        id,
			Feedbacks: []domain.Feedback{},
			CreatedAt: i.now(),
			Author:    row.Author,
		}
	}
	p.Name = row.Name
	p.Description = row.Description
	p.Price = row.Price
	p.AttachmentURL = row.AttachmentURL

	if _, err := i.store.Upsert(ctx, p); err != nil {
		return fmt.Errorf("line %d: upsert product %q: %w", row.line, p.ID, err)
	}
	i.logger.Debug("imported product", zap.String("id", p.ID), zap.Bool("replaced", existing != nil))
	return nil
}

func (i *CSVImporter) lookup(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, nil
	}
	p, err := i.store.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// parseRow returns nil for blank rows.
func parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	row := &csvRow{
		line:          line,
		ID:            pick(record, index, "id"),
		Name:          pick(record, index, "name"),
		Description:   pick(record, index, "description"),
		AttachmentURL: pick(record, index, "attachmentURL"),
		Author:        domain.ParsePrincipal(pick(record, index, "author")),
	}
	priceStr := pick(record, index, "price")

	if row.ID == "" && row.Name == "" && row.Description == "" && priceStr == "" && row.AttachmentURL == "" {
		return nil, nil
	}
	if row.Name == "" {
		return nil, fmt.Errorf("line %d: name is required", line)
	}
	if priceStr != "" {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price %q: %w", line, priceStr, err)
		}
		row.Price = price
	}
	return row, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
