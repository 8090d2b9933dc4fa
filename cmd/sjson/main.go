// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program sjson checks and re-encodes JSON text with the sjson codec.
//
// Usage:
//
//	sjson check [--trailing] [file]
//	sjson fmt [--ascii=false] [file]
//
// Input is read from the named file, or from stdin if no file is given or
// the file is "-". Encoder and decoder settings may also be given in the
// environment as SJSON_ASCII, SJSON_SKIP_KEYS, SJSON_ALLOW_NAN,
// SJSON_CHECK_CIRCULAR, SJSON_MAX_DEPTH, SJSON_COMBINE_SURROGATES,
// SJSON_LENIENT, and SJSON_VERBOSE. Flags override the environment.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd(os.LookupEnv)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
