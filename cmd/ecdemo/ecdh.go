// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package main

import (
	"fmt"

	"github.com/mgit-at/ecc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) ecdhCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecdh",
		Short: "Derive a shared secret between alice and bob",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runECDH(cmd)
		},
	}
	cmd.Flags().Bool("blind", false, "use scalar blinding for the secret derivation")
	if err := a.conf.BindPFlag("blind", cmd.Flags().Lookup("blind")); err != nil {
		panic(err)
	}
	return cmd
}

func (a *app) runECDH(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Curve:", a.curve.Name())

	alice, err := a.generateKey("alice")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nAlice's private key: 0x%x\n", alice.D())
	fmt.Fprintln(out, "Alice's public key:", alice.Public())

	bob, err := a.generateKey("bob")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nBob's private key: 0x%x\n", bob.D())
	fmt.Fprintln(out, "Bob's public key:", bob.Public())

	derive := ecc.DeriveSharedSecret
	if a.conf.GetBool("blind") {
		derive = func(priv *ecc.PrivateKey, peer *ecc.PublicKey) (ecc.Point, error) {
			return ecc.DeriveSharedSecretBlind(priv, peer, a.rand)
		}
	}

	aliceShared, err := derive(alice, bob.Public())
	if err != nil {
		return errors.Wrap(err, "failed to derive secret for alice")
	}
	bobShared, err := derive(bob, alice.Public())
	if err != nil {
		return errors.Wrap(err, "failed to derive secret for bob")
	}
	if !aliceShared.Equal(bobShared) {
		a.log.Error("shared secrets differ",
			zap.Stringer("alice", aliceShared),
			zap.Stringer("bob", bobShared))
		return errors.New("shared secrets differ")
	}

	fmt.Fprintln(out, "\nShared secret:", aliceShared)
	a.log.Info("shared secret derived",
		zap.String("curve", a.curve.Name()),
		zap.Bool("blind", a.conf.GetBool("blind")))
	return nil
}
