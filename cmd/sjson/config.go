// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"github.com/creachadair/sjson"
	"github.com/mstoykov/envconfig"
	"github.com/spf13/pflag"
)

// config holds the settings for a run of the tool.
type config struct {
	ASCII         bool
	SkipKeys      bool
	AllowNaN      bool
	CheckCircular bool
	MaxDepth      int
	Combine       bool
	Lenient       bool
	Verbose       bool
}

func defaultConfig() config {
	return config{
		ASCII:         true,
		AllowNaN:      true,
		CheckCircular: true,
		MaxDepth:      sjson.DefaultMaxDepth,
	}
}

// envConfig holds settings read from the environment. Unset variables leave
// their fields nil.
type envConfig struct {
	ASCII         *bool `envconfig:"SJSON_ASCII"`
	SkipKeys      *bool `envconfig:"SJSON_SKIP_KEYS"`
	AllowNaN      *bool `envconfig:"SJSON_ALLOW_NAN"`
	CheckCircular *bool `envconfig:"SJSON_CHECK_CIRCULAR"`
	MaxDepth      *int  `envconfig:"SJSON_MAX_DEPTH"`
	Combine       *bool `envconfig:"SJSON_COMBINE_SURROGATES"`
	Lenient       *bool `envconfig:"SJSON_LENIENT"`
	Verbose       *bool `envconfig:"SJSON_VERBOSE"`
}

// applyEnv returns a copy of c updated from the environment variables
// reported by lookup.
func (c config) applyEnv(lookup func(string) (string, bool)) (config, error) {
	var env envConfig
	if err := envconfig.Process("", &env, lookup); err != nil {
		return c, err
	}
	setIf(&c.ASCII, env.ASCII)
	setIf(&c.SkipKeys, env.SkipKeys)
	setIf(&c.AllowNaN, env.AllowNaN)
	setIf(&c.CheckCircular, env.CheckCircular)
	setIf(&c.MaxDepth, env.MaxDepth)
	setIf(&c.Combine, env.Combine)
	setIf(&c.Lenient, env.Lenient)
	setIf(&c.Verbose, env.Verbose)
	return c, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Flag names, shared by bindFlags and applyFlags.
const (
	flagASCII    = "ascii"
	flagSkipKeys = "skip-keys"
	flagAllowNaN = "allow-nan"
	flagCircular = "check-circular"
	flagMaxDepth = "max-depth"
	flagCombine  = "combine-surrogates"
	flagLenient  = "lenient"
	flagVerbose  = "verbose"
)

// bindFlags registers the configuration flags on fs, storing their values
// in c.
func (c *config) bindFlags(fs *pflag.FlagSet) {
	d := defaultConfig()
	fs.BoolVar(&c.ASCII, flagASCII, d.ASCII, "Escape non-ASCII characters in output")
	fs.BoolVar(&c.SkipKeys, flagSkipKeys, d.SkipKeys, "Omit object members with unsupported keys")
	fs.BoolVar(&c.AllowNaN, flagAllowNaN, d.AllowNaN, "Write NaN and Infinity constants")
	fs.BoolVar(&c.CheckCircular, flagCircular, d.CheckCircular, "Detect circular values when encoding")
	fs.IntVar(&c.MaxDepth, flagMaxDepth, d.MaxDepth, "Maximum nesting depth (< 0 for no limit)")
	fs.BoolVar(&c.Combine, flagCombine, d.Combine, "Merge escaped surrogate pairs when decoding")
	fs.BoolVarP(&c.Lenient, flagLenient, "l", d.Lenient, "Accept comments and trailing commas (HuJSON)")
	fs.BoolVarP(&c.Verbose, flagVerbose, "v", d.Verbose, "Enable debug logging")
}

// applyFlags returns a copy of c updated with the flags explicitly set in
// fs, taking their values from f.
func (c config) applyFlags(fs *pflag.FlagSet, f config) config {
	set := func(name string) bool { return fs.Changed(name) }
	if set(flagASCII) {
		c.ASCII = f.ASCII
	}
	if set(flagSkipKeys) {
		c.SkipKeys = f.SkipKeys
	}
	if set(flagAllowNaN) {
		c.AllowNaN = f.AllowNaN
	}
	if set(flagCircular) {
		c.CheckCircular = f.CheckCircular
	}
	if set(flagMaxDepth) {
		c.MaxDepth = f.MaxDepth
	}
	if set(flagCombine) {
		c.Combine = f.Combine
	}
	if set(flagLenient) {
		c.Lenient = f.Lenient
	}
	if set(flagVerbose) {
		c.Verbose = f.Verbose
	}
	return c
}

func (c config) decoder() *sjson.Decoder {
	var d sjson.Decoder
	d.MaxDepth(c.MaxDepth)
	d.CombineSurrogates(c.Combine)
	return &d
}

func (c config) encoder() *sjson.Encoder {
	var e sjson.Encoder
	e.EnsureASCII(c.ASCII)
	e.SkipKeys(c.SkipKeys)
	e.AllowNaN(c.AllowNaN)
	e.CheckCircular(c.CheckCircular)
	e.MaxDepth(c.MaxDepth)
	return &e
}
