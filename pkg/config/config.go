// Package config resolves diary settings from defaults, diary.yaml, DIARY_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/unowned-ai/diary/pkg/calendar"
	pkgdb "github.com/unowned-ai/diary/pkg/db"
	"github.com/unowned-ai/diary/pkg/utils"
)

const (
	EnvPrefix = "DIARY"
	FileName  = "diary"
	FileType  = "yaml"
)

// Keys double as flag names; env variables replace dashes with underscores.
const (
	KeyDB         = "db"
	KeyWAL        = "wal"
	KeySync       = "sync"
	KeyDateLayout = "date-layout"
	KeyVerbose    = "verbose"
)

// ErrInvalidDateLayout reports a date layout that cannot render and read back a day.
var ErrInvalidDateLayout = errors.New("invalid date layout")

type Config struct {
	DBPath     string
	WAL        bool
	SyncMode   string
	DateLayout string
	Verbose    bool
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyWAL, false)
	v.SetDefault(KeySync, "FULL")
	v.SetDefault(KeyDateLayout, calendar.DefaultKeyLayout)
	v.SetDefault(KeyVerbose, false)
}

// ReadConfigFile loads path, or searches the standard config directories for
// diary.yaml when path is empty. A missing file is only an error when path was given.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		return nil
	}

	v.SetConfigName(FileName)
	v.SetConfigType(FileType)
	for _, dir := range utils.ConfigDirs() {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load reads the resolved settings out of v and validates them.
func Load(v *viper.Viper) (Config, error) {
	syncMode, err := pkgdb.ValidateSyncMode(v.GetString(KeySync))
	if err != nil {
		return Config{}, err
	}

	layout, err := dateLayout(v)
	if err != nil {
		return Config{}, err
	}

	return Config{
		DBPath:     v.GetString(KeyDB),
		WAL:        v.GetBool(KeyWAL),
		SyncMode:   syncMode,
		DateLayout: layout,
		Verbose:    v.GetBool(KeyVerbose),
	}, nil
}

// dateLayout reads the key layout. YAML decodes an unquoted 2006-01-02 as a
// timestamp, so a midnight UTC value is turned back into its date layout.
func dateLayout(v *viper.Viper) (string, error) {
	var layout string
	switch raw := v.Get(KeyDateLayout).(type) {
	case time.Time:
		if raw.Location() != time.UTC || raw.Hour() != 0 || raw.Minute() != 0 || raw.Second() != 0 || raw.Nanosecond() != 0 {
			return "", fmt.Errorf("%w: %s was read as a timestamp, quote it in the config file", ErrInvalidDateLayout, raw)
		}
		layout = raw.Format("2006-01-02")
	default:
		layout = strings.TrimSpace(v.GetString(KeyDateLayout))
	}
	if layout == "" {
		return calendar.DefaultKeyLayout, nil
	}

	sample := time.Date(2025, time.October, 17, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, calendar.Key(sample, layout))
	if err != nil || !parsed.Equal(sample) {
		return "", fmt.Errorf("%w: %q does not round-trip a calendar day", ErrInvalidDateLayout, layout)
	}
	return layout, nil
}
