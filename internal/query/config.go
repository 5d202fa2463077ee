package query

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"KDRANGE_SEARCH_REQUEST_TIMEOUT" default:"30s"`
	MaxRanges      int           `envconfig:"KDRANGE_SEARCH_MAX_RANGES" default:"64"`
	MaxBodyBytes   int64         `envconfig:"KDRANGE_SEARCH_MAX_BODY_BYTES" default:"1048576"`
}
