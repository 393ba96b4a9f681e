package domain

import "context"

// DatasetKind identifies one of the three record layouts.
type DatasetKind string

const (
	DatasetTrend   DatasetKind = "trend"
	DatasetCause   DatasetKind = "cause"
	DatasetAirport DatasetKind = "airport"
)

// Source describes where a dataset is read from and how it is restricted.
type Source struct {
	Kind DatasetKind
	Path string
	// Years, when set, keeps only records within the range at load time.
	Years *Range
}

// RecordLoader reads and derives the records of a source.
type RecordLoader interface {
	Load(ctx context.Context, src Source) ([]FlightDelayRecord, error)
}
