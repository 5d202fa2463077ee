package build

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"KDRANGE_BUILD_REQUEST_TIMEOUT" default:"30s"`
	MaxPoints      int           `envconfig:"KDRANGE_BUILD_MAX_POINTS" default:"1000000"`
	MaxBodyBytes   int64         `envconfig:"KDRANGE_BUILD_MAX_BODY_BYTES" default:"67108864"`
}
