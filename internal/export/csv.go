package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/tariffsheriff/tariffsheriff-backend/internal/hscodes"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/savedtariffs"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/metrics"
)

// TableFilename names the summary export for a page.
func TableFilename(page int) string {
	return fmt.Sprintf("saved-tariffs-page-%d.csv", page)
}

// DetailFilename names the detail export for a page.
func DetailFilename(page int) string {
	return fmt.Sprintf("saved-tariffs-details-page-%d.csv", page)
}

var tableHeader = []string{
	"Name",
	"Importer ISO",
	"Origin ISO",
	"Total Value",
	"Total After Tariff",
	"Agreement",
}

var detailHeader = []string{
	"Name",
	"Notes",
	"HS Code",
	"HS Label",
	"Importer ISO",
	"Origin ISO",
	"Quantity",
	"Total Value",
	"MFN Rate",
	"Pref Rate",
	"Rate Used",
	"Applied Rate",
	"RVC Threshold",
	"RVC Computed",
	"FOB",
	"Non-Origin Value",
	"Material Cost",
	"Labour Cost",
	"Overhead Cost",
	"Profit",
	"Other Costs",
	"Total Tariff",
	"Agreement",
	"Created At",
}

// Exporter serializes saved-tariff pages to CSV. Display rounding to two
// decimals happens here and nowhere earlier.
type Exporter struct {
	detail  DetailFetcher
	search  hscodes.Searcher
	metrics *metrics.CalculatorMetrics
	log     *logger.Logger
}

// DetailFetcher hydrates one saved row.
type DetailFetcher interface {
	Get(ctx context.Context, id uint) (*savedtariffs.Detail, error)
}

// NewExporter builds an exporter. The searcher may be nil when label
// enrichment is unavailable; labels then stay empty.
func NewExporter(detail DetailFetcher, search hscodes.Searcher, mtr *metrics.CalculatorMetrics, log *logger.Logger) *Exporter {
	return &Exporter{detail: detail, search: search, metrics: mtr, log: log}
}

// Table writes the summary CSV for one loaded page.
func (e *Exporter) Table(w io.Writer, rows []savedtariffs.Summary) error {
	started := time.Now()
	writer := csv.NewWriter(w)

	if err := writer.Write(tableHeader); err != nil {
		e.metrics.IncFailure("export_table")
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Name,
			row.ImporterIso3,
			row.OriginIso3,
			money(row.TotalValue),
			money(row.TotalValue + row.TotalTariff),
			row.AgreementName,
		}
		if err := writer.Write(record); err != nil {
			e.metrics.IncFailure("export_table")
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		e.metrics.IncFailure("export_table")
		return err
	}
	e.metrics.ObserveDuration("export_table", time.Since(started))
	e.metrics.IncSuccess("export_table")
	return nil
}

type hydratedRow struct {
	detail *savedtariffs.Detail
	label  string
	err    error
}

// Details writes the expanded CSV for one loaded page. Every row's detail
// and label fetch runs concurrently; a failed row degrades to its summary
// columns instead of aborting the batch. The returned error aggregates the
// per-row failures; the CSV written to w is complete either way.
func (e *Exporter) Details(ctx context.Context, w io.Writer, rows []savedtariffs.Summary) error {
	started := time.Now()

	hydrated := make([]hydratedRow, len(rows))
	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			detail, err := e.detail.Get(ctx, id)
			if err != nil {
				hydrated[i].err = fmt.Errorf("hydrate saved calculation %d: %w", id, err)
				return
			}
			hydrated[i].detail = detail
			if e.search != nil {
				// Label lookup is enrichment only; its failure never
				// touches the row.
				hydrated[i].label = hscodes.BestLabel(ctx, e.search, detail.HsCode)
			}
		}(i, row.ID)
	}
	wg.Wait()

	writer := csv.NewWriter(w)
	if err := writer.Write(detailHeader); err != nil {
		e.metrics.IncFailure("export_details")
		return err
	}

	var rowErrs error
	for i, row := range rows {
		record := e.detailRecord(row, hydrated[i])
		if hydrated[i].err != nil {
			rowErrs = multierr.Append(rowErrs, hydrated[i].err)
		}
		if err := writer.Write(record); err != nil {
			e.metrics.IncFailure("export_details")
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		e.metrics.IncFailure("export_details")
		return err
	}

	e.metrics.ObserveDuration("export_details", time.Since(started))
	if rowErrs != nil {
		if e.log != nil {
			e.log.Warn(ctx, "detail export degraded: "+rowErrs.Error())
		}
		e.metrics.IncFailure("export_details")
		return rowErrs
	}
	e.metrics.IncSuccess("export_details")
	return nil
}

func (e *Exporter) detailRecord(summary savedtariffs.Summary, row hydratedRow) []string {
	if row.detail == nil {
		// Degraded row: summary columns only.
		record := make([]string, len(detailHeader))
		record[0] = summary.Name
		record[4] = summary.ImporterIso3
		record[5] = summary.OriginIso3
		record[7] = money(summary.TotalValue)
		record[21] = money(summary.TotalTariff)
		record[22] = summary.AgreementName
		record[23] = summary.CreatedAt.UTC().Format(time.RFC3339)
		return record
	}

	detail := row.detail
	return []string{
		detail.Name,
		detail.Notes,
		detail.HsCode,
		row.label,
		detail.ImporterIso3,
		detail.OriginIso3,
		strconv.Itoa(detail.Input.Quantity),
		money(detail.Input.TotalValue),
		money(detail.Input.MfnRate),
		money(detail.Input.PrefRate),
		detail.Result.RateUsed.String(),
		money(detail.Result.AppliedRate),
		money(detail.Result.RvcThreshold),
		money(detail.Result.RvcComputed),
		money(detail.Input.Fob),
		money(detail.Input.NonOriginValue),
		money(detail.Input.MaterialCost),
		money(detail.Input.LabourCost),
		money(detail.Input.OverheadCost),
		money(detail.Input.Profit),
		money(detail.Input.OtherCosts),
		money(detail.Result.TotalTariff),
		detail.AgreementName,
		detail.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// money renders a number with exactly two decimals, or empty when the
// value is not finite.
func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
