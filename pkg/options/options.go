// Package options provides configuration structures and utilities for the transcript bot.
package options

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// MaxHistoryLimit is the largest page of messages the Discord API returns for one request.
const MaxHistoryLimit = 100

// Options holds configuration values for the bot, loaded from environment variables or JSON.
type Options struct {
	AllowedChannelIDs   []string `env:"ALLOWED_CHANNEL_IDS" json:",omitempty"`
	DefaultHistoryLimit int      `env:"DEFAULT_HISTORY_LIMIT" json:","`
	DefaultMode         string   `env:"DEFAULT_MODE" json:","`
	DiscordNickname     string   `env:"DISCORD_NICKNAME" json:",omitempty"`
	DiscordPlaying      string   `env:"DISCORD_PLAYING" json:",omitempty"`
	DiscordToken        string   `env:"DISCORD_TOKEN" json:","`
	MaxReplyPages       int      `env:"MAX_REPLY_PAGES" json:","`
	RestTimeoutSeconds  int      `env:"REST_TIMEOUT_SECONDS" json:","`
	TimeZone            string   `env:"TIME_ZONE" json:","`
}

// defaultOptions creates a new Options instance with default values.
func defaultOptions() *Options {
	return &Options{
		DefaultHistoryLimit: 50,
		DefaultMode:         "author",
		MaxReplyPages:       3,
		RestTimeoutSeconds:  10,
		TimeZone:            "UTC",
	}
}

// FromEnv populates Options from environment variables dynamically.
// Returns an Options pointer or an error if required fields are missing or invalid.
func FromEnv() (*Options, error) {
	options := defaultOptions()
	if err := options.loadEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment variables: %w", err)
	}
	return options, nil
}

func (o *Options) loadEnv(lookup func(string) (string, bool)) error {
	v := reflect.ValueOf(o).Elem()
	t := v.Type()

	for i := range v.NumField() {
		field := v.Field(i)
		fieldType := t.Field(i)

		envKey := fieldType.Tag.Get("env")
		if envKey == "" {
			continue
		}
		envValue, exists := lookup(envKey)
		if !exists {
			continue
		}

		switch field.Kind() {
		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.String {
				return fmt.Errorf("unsupported slice type for %s", envKey)
			}
			field.Set(reflect.ValueOf(strings.Fields(envValue)))
		case reflect.String:
			field.SetString(envValue)
		case reflect.Int:
			intValue, err := strconv.Atoi(envValue)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", envKey, err)
			}
			field.SetInt(int64(intValue))
		}
	}
	return nil
}

// FromStdin reads JSON from standard input and populates Options.
func FromStdin() (*Options, error) {
	return FromReader(os.Stdin)
}

// FromReader decodes JSON from r over the default Options.
func FromReader(r io.Reader) (*Options, error) {
	options := defaultOptions()
	if err := json.NewDecoder(r).Decode(options); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return options, nil
}

// Validate reports missing or malformed fields.
func (o *Options) Validate() error {
	var errs []error
	if o.DiscordToken == "" {
		errs = append(errs, errors.New("`DISCORD_TOKEN` is missing"))
	}
	if _, err := time.LoadLocation(o.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("`TIME_ZONE` is invalid: %w", err))
	}
	for _, id := range o.AllowedChannelIDs {
		if _, err := snowflake.Parse(id); err != nil {
			errs = append(errs, fmt.Errorf("`ALLOWED_CHANNEL_IDS` contains invalid id %q: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// Discord returns the Discord nickname and playing status from the options.
// Both fall back to "transcript".
func (o *Options) Discord() (nickname, playing string) {
	nickname, playing = "transcript", "transcript"
	if o.DiscordNickname != "" {
		nickname = o.DiscordNickname
	}
	if o.DiscordPlaying != "" {
		playing = o.DiscordPlaying
	}
	return
}

// Location returns the time zone used to split transcripts by day.
func (o *Options) Location() *time.Location {
	loc, err := time.LoadLocation(o.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HistoryLimit clamps the number of messages requested by a user.
// A non-positive request means the configured default.
func (o *Options) HistoryLimit(requested int) int {
	if requested <= 0 {
		requested = o.DefaultHistoryLimit
	}
	if requested <= 0 {
		requested = defaultOptions().DefaultHistoryLimit
	}
	return min(requested, MaxHistoryLimit)
}

// IsChannelAllowed reports whether the bot may answer in the channel.
// An empty AllowedChannelIDs allows every channel.
func (o *Options) IsChannelAllowed(id snowflake.ID) bool {
	return len(o.AllowedChannelIDs) == 0 || slices.Contains(o.AllowedChannelIDs, id.String())
}

// ReplyPages returns the maximum number of reply messages for one transcript.
func (o *Options) ReplyPages() int {
	if o.MaxReplyPages <= 0 {
		return defaultOptions().MaxReplyPages
	}
	return o.MaxReplyPages
}

// ContextWithRestTimeout creates a context with the REST timeout duration.
// This context can be used to enforce a timeout for REST API calls.
func (o *Options) ContextWithRestTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := o.RestTimeoutSeconds
	if timeout <= 0 {
		timeout = defaultOptions().RestTimeoutSeconds
	}
	return context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
}
