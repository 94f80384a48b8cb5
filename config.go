package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/go-arrower/roster/alog"
)

// Config is a structure used for service configuration.
// It is intended to be mapped by viper.
type Config struct {
	ApplicationName string `mapstructure:"application_name"`
	InstanceName    string `mapstructure:"instance_name"`

	Environment Environment `mapstructure:"environment"`

	Log    Log    `mapstructure:"log"`
	OTEL   OTEL   `mapstructure:"otel"`
	People People `mapstructure:"people"`
}

const (
	LocalEnv       Environment = "local"
	TestEnv        Environment = "test"
	DevelopmentEnv Environment = "dev"
	ProductionEnv  Environment = "prod"
)

// Environments is the list of all supported environments.
func Environments() []Environment {
	return []Environment{LocalEnv, TestEnv, DevelopmentEnv, ProductionEnv}
}

type Environment string

type (
	Log struct {
		// Level accepts the slog names and the roster levels, e.g. "roster:debug".
		Level slog.Level `mapstructure:"level" json:"level"`
	}

	OTEL struct {
		// SampleRatio is the share of traces sampled outside the local environment.
		SampleRatio float64 `mapstructure:"sample_ratio" json:"sampleRatio"`
	}

	People struct {
		// Capacity is the maximum number of users held. 0 means unbounded.
		Capacity int `mapstructure:"capacity" json:"capacity"`
	}
)

const envPrefix = "ROSTER"

// DefaultViper returns a new viper instance with all default values
// from Config set.
// Every value can be overwritten by an environment variable, e.g. ROSTER_PEOPLE_CAPACITY.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetEnvPrefix(envPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	vip.SetDefault("application_name", "roster")
	vip.SetDefault("instance_name", "")

	vip.SetDefault("environment", "local")

	vip.SetDefault("log.level", "info")

	vip.SetDefault("otel.sample_ratio", 0.6) //nolint:mnd

	vip.SetDefault("people.capacity", 100) //nolint:mnd

	return &Viper{Viper: vip}
}

var errConfigLoadFailed = errors.New("loading configuration failed")

// Viper is a wrapper around viper.Viper for configuration loading.
// The only purpose is to overwrite the Unmarshal method,
// so that the custom types of Config are decoded and checked
// without the developer having to think about it when using DefaultViper.
type Viper struct {
	*viper.Viper
}

func (vip *Viper) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	opts = append([]viper.DecoderConfigOption{viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		allowedEnvironmentHookFunc(),
		logLevelHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))}, opts...)

	err := vip.Viper.Unmarshal(rawVal, opts...)
	if err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", errConfigLoadFailed, err) //nolint:errorlint // prevent err in api
	}

	if conf, ok := rawVal.(*Config); ok && conf.People.Capacity < 0 {
		return fmt.Errorf("%w: people.capacity must not be negative: %d", errConfigLoadFailed, conf.People.Capacity)
	}

	return nil
}

func allowedEnvironmentHookFunc() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(Environment("")) {
			return data, nil
		}

		env := Environments()
		if str, ok := data.(string); ok && slices.Contains(env, Environment(str)) {
			return data, nil
		}

		e := make([]string, 0, len(env))
		for _, env := range env {
			e = append(e, string(env))
		}

		return data, fmt.Errorf("value is not allowed, use one of: %s", strings.Join(e, ", ")) //nolint:err113 // accept dynamic error
	}
}

func logLevelHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(slog.Level(0)) || f.Kind() != reflect.String {
			return data, nil
		}

		level, err := alog.ParseLevel(data.(string)) //nolint:forcetypeassert // kind is checked above
		if err != nil {
			return data, err //nolint:wrapcheck // wrapped by Unmarshal
		}

		return level, nil
	}
}
