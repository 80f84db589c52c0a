package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"kaspalytics/internal/domain"
)

// ExportCSV serializes the tier-visible series as CSV with a header row.
func (s *MarketService) ExportCSV(ctx context.Context, lookbackDays int, tier domain.Tier) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.export-csv")
	defer span.End()

	series, err := s.GetSeries(ctx, lookbackDays, tier)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"timestamp", "price", "volume", "open", "high", "low", "close"}); err != nil {
		return nil, err
	}
	for _, p := range series {
		record := []string{
			p.Timestamp.UTC().Format(time.RFC3339),
			formatFloat(p.Price),
			formatFloat(p.Volume),
			formatFloat(p.Open),
			formatFloat(p.High),
			formatFloat(p.Low),
			formatFloat(p.Close),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON serializes the tier-visible series as a JSON array of points.
func (s *MarketService) ExportJSON(ctx context.Context, lookbackDays int, tier domain.Tier) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.export-json")
	defer span.End()

	series, err := s.GetSeries(ctx, lookbackDays, tier)
	if err != nil {
		return nil, err
	}
	return json.Marshal(series)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
