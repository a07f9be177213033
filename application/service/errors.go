package service

import "errors"

// ErrNoCorpora indicates an ingestion run was started with nothing to read.
var ErrNoCorpora = errors.New("bitext: no corpora to ingest")
