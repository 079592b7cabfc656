package statsd

type Config struct {
	Enabled             bool    `mapstructure:"enabled" yaml:"enabled" default:"false"`
	Address             string  `mapstructure:"address" yaml:"address" default:"127.0.0.1:8125"`
	Prefix              string  `mapstructure:"prefix" yaml:"prefix" default:"ticketsearch"`
	SamplingRate        float64 `mapstructure:"sampling_rate" yaml:"sampling_rate" default:"1"`
	Separator           string  `mapstructure:"separator" yaml:"separator" default:"."`
	WithInfluxTagFormat bool    `mapstructure:"with_influx_tag_format" yaml:"with_influx_tag_format" default:"true"`
}
