// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/creachadair/sjson"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
)

// state is shared by the commands of a single invocation.
type state struct {
	lookup func(string) (string, bool)
	flags  config // values bound to command-line flags
	cfg    config // effective settings
	log    *logrus.Logger
}

func newRootCmd(lookup func(string) (string, bool)) *cobra.Command {
	st := &state{lookup: lookup, log: logrus.New()}
	root := &cobra.Command{
		Use:   "sjson",
		Short: "Check and re-encode JSON text",
		Long: `Check and re-encode JSON text.

The decoder accepts standard JSON plus the constants NaN, Infinity, and
-Infinity. Settings may be given in the environment (SJSON_ASCII, SJSON_MAX_DEPTH,
and so on) and are overridden by flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	st.flags.bindFlags(root.PersistentFlags())

	var trailing bool
	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Report whether the input is a valid JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.runCheck(cmd, args, trailing)
		},
	}
	checkCmd.Flags().BoolVarP(&trailing, "trailing", "t", false,
		"Decode one value and report where it ends, ignoring the rest")

	fmtCmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Decode the input and write it back in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.runFmt(cmd, args)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sjson",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sjson", version())
		},
	}

	root.AddCommand(checkCmd, fmtCmd, versionCmd)
	return root
}

// setup computes the effective configuration and sets up logging.
func (st *state) setup(cmd *cobra.Command) error {
	cfg, err := defaultConfig().applyEnv(st.lookup)
	if err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	st.cfg = cfg.applyFlags(cmd.Flags(), st.flags)

	st.log.SetOutput(cmd.ErrOrStderr())
	st.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if st.cfg.Verbose {
		st.log.SetLevel(logrus.DebugLevel)
	}
	st.log.WithFields(logrus.Fields{
		"ascii":     st.cfg.ASCII,
		"allowNaN":  st.cfg.AllowNaN,
		"maxDepth":  st.cfg.MaxDepth,
		"combine":   st.cfg.Combine,
		"lenient":   st.cfg.Lenient,
		"skipKeys":  st.cfg.SkipKeys,
		"circular":  st.cfg.CheckCircular,
		"command":   cmd.Name(),
		"arguments": cmd.Flags().Args(),
	}).Debug("configured")
	return nil
}

// readInput reads the input named by args, or stdin.
func (st *state) readInput(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", err
	}
	st.log.WithField("bytes", len(data)).Debug("read input")

	if st.cfg.Lenient {
		data, err = hujson.Standardize(data)
		if err != nil {
			return "", fmt.Errorf("standardizing input: %w", err)
		}
	}
	return string(data), nil
}

func (st *state) runCheck(cmd *cobra.Command, args []string, trailing bool) error {
	text, err := st.readInput(cmd, args)
	if err != nil {
		return err
	}
	dec := st.cfg.decoder()
	if trailing {
		v, end, err := dec.DecodeOne(text)
		if err != nil {
			return st.reportSyntax(err)
		}
		st.log.WithField("end", end).Debug("decoded leading value")
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", v.Kind(), end)
		return nil
	}
	v, err := dec.Decode(text)
	if err != nil {
		return st.reportSyntax(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.Kind())
	return nil
}

func (st *state) runFmt(cmd *cobra.Command, args []string) error {
	text, err := st.readInput(cmd, args)
	if err != nil {
		return err
	}
	v, err := st.cfg.decoder().Decode(text)
	if err != nil {
		return st.reportSyntax(err)
	}

	w := cmd.OutOrStdout()
	var chunks, size int
	if err := st.cfg.encoder().Emit(v, func(chunk string) error {
		chunks++
		size += len(chunk)
		_, err := io.WriteString(w, chunk)
		return err
	}); err != nil {
		return err
	}
	st.log.WithFields(logrus.Fields{"chunks": chunks, "bytes": size}).Debug("encoded output")
	_, err = fmt.Fprintln(w)
	return err
}

// reportSyntax logs the location of a syntax error, and returns err.
func (st *state) reportSyntax(err error) error {
	var serr *sjson.SyntaxError
	if errors.As(err, &serr) {
		st.log.WithFields(logrus.Fields{
			"line":   serr.Location.First.Line,
			"column": serr.Location.First.Column,
			"offset": serr.Location.Pos,
		}).Error(serr.Message)
	}
	return err
}

func version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}
