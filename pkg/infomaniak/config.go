package infomaniak

import (
	"flag"
	"time"

	"github.com/zachfi/zkit/pkg/util"
)

const (
	DefaultURL     = "https://statslive.infomaniak.com"
	defaultTimeout = 10 * time.Second
)

type Config struct {
	URL     string        `yaml:"url,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.URL, util.PrefixConfig(prefix, "url"), DefaultURL, "Base URL of the radio statistics platform")
	f.DurationVar(&cfg.Timeout, util.PrefixConfig(prefix, "timeout"), defaultTimeout, "Timeout for each request to the statistics platform")
}
