package ipapi

import (
	"flag"
	"time"

	"github.com/zachfi/zkit/pkg/util"
)

const (
	DefaultURL     = "http://ip-api.com"
	defaultTimeout = 5 * time.Second
)

type Config struct {
	URL           string        `yaml:"url,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	RatePerSecond float64       `yaml:"rate-per-second,omitempty"` // 0 disables pacing
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.URL, util.PrefixConfig(prefix, "url"), DefaultURL, "Base URL of the ip-api.com compatible geolocation service")
	f.DurationVar(&cfg.Timeout, util.PrefixConfig(prefix, "timeout"), defaultTimeout, "Timeout for a single geolocation lookup")
	f.Float64Var(&cfg.RatePerSecond, util.PrefixConfig(prefix, "rate-per-second"), 0,
		"Maximum geolocation lookups per second. 0 disables pacing; 0.75 keeps within the ip-api.com free tier.")
}
