// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package main

import (
	"crypto/rand"
	"io"
	"strings"

	"github.com/mgit-at/ecc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "ECDEMO"

// app holds the state shared by all subcommands. It is filled in by the
// root command before a subcommand runs.
type app struct {
	conf  *viper.Viper
	log   *zap.Logger
	curve *ecc.Curve
	rand  io.Reader
}

func newRootCmd() *cobra.Command {
	a := &app{
		conf: viper.New(),
		log:  zap.NewNop(),
		rand: rand.Reader,
	}
	a.conf.SetEnvPrefix(envPrefix)
	a.conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.conf.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "ecdemo",
		Short:        "Elliptic curve key agreement and signature demo",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("curve", "secp256k1", "curve preset (secp256k1, p256, toy17)")
	flags.BoolP("verbose", "v", false, "human readable debug logging")
	if err := a.conf.BindPFlags(flags); err != nil {
		panic(err)
	}

	cmd.AddCommand(a.ecdhCmd())
	cmd.AddCommand(a.ecdsaCmd())
	return cmd
}

// setup builds the logger and resolves the curve preset.
func (a *app) setup(cmd *cobra.Command) error {
	a.log = newLogger(cmd.ErrOrStderr(), a.conf.GetBool("verbose"))

	name := a.conf.GetString("curve")
	c, err := ecc.CurveByName(name)
	if err != nil {
		return errors.Wrapf(err, "unknown curve %q", name)
	}
	a.curve = c
	a.log.Debug("curve selected",
		zap.String("curve", c.Name()),
		zap.Int("bits", c.BitSize()))
	return nil
}

// newLogger writes JSON entries at info level, or console entries at debug
// level if verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	encConf := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder(encConf)
	if verbose {
		level = zapcore.DebugLevel
		encConf = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encConf)
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core).Named("ecdemo")
}

// generateKey creates a key pair on the selected curve and logs its public
// point.
func (a *app) generateKey(owner string) (*ecc.PrivateKey, error) {
	priv, err := ecc.GenerateKey(a.curve, a.rand)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate key for %s", owner)
	}
	a.log.Debug("key generated",
		zap.String("owner", owner),
		zap.Stringer("public", priv.Public()))
	return priv, nil
}
