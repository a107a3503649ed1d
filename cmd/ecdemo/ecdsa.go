// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package main

import (
	"fmt"
	"io"

	"github.com/mgit-at/ecc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	verifyMatch    = "Signature Match!"
	verifyMismatch = "ERROR - Signature Mismatch!"
)

func (a *app) ecdsaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecdsa",
		Short: "Sign a message and verify it against several messages and keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runECDSA(cmd)
		},
	}
	cmd.Flags().StringP("message", "m", "Hello, world!", "message to sign")
	if err := a.conf.BindPFlag("message", cmd.Flags().Lookup("message")); err != nil {
		panic(err)
	}
	return cmd
}

func (a *app) runECDSA(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Curve:", a.curve.Name())

	alice, err := a.generateKey("alice")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Alice's private key: 0x%x\n", alice.D())
	fmt.Fprintln(out, "Alice's public key:", alice.Public())

	message := a.conf.GetString("message")
	sig, err := a.sign(alice, message)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nMessage:", message)
	fmt.Fprintln(out, "Signature:", sig)
	if err := a.verify(out, alice.Public(), message, sig); err != nil {
		return err
	}

	unsigned := "This is unsigned!"
	fmt.Fprintln(out, "\nMessage:", unsigned)
	if err := a.verify(out, alice.Public(), unsigned, sig); err != nil {
		return err
	}

	bob, err := a.generateKey("bob")
	if err != nil {
		return err
	}
	wrongKey := "This person doesn't have the right key!"
	sig, err = a.sign(alice, wrongKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nMessage:", wrongKey)
	fmt.Fprintln(out, "Signature:", sig)
	return a.verify(out, bob.Public(), wrongKey, sig)
}

func (a *app) sign(priv *ecc.PrivateKey, message string) (*ecc.Signature, error) {
	sig, err := ecc.Sign(a.rand, priv, []byte(message))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign %q", message)
	}
	a.log.Debug("message signed", zap.String("message", message), zap.Stringer("signature", sig))
	return sig, nil
}

func (a *app) verify(out io.Writer, pub *ecc.PublicKey, message string, sig *ecc.Signature) error {
	ok, err := ecc.Verify(pub, []byte(message), sig)
	if err != nil {
		return errors.Wrapf(err, "failed to verify %q", message)
	}
	result := verifyMismatch
	if ok {
		result = verifyMatch
	}
	fmt.Fprintln(out, "Verification:", result)
	a.log.Info("signature verified",
		zap.String("message", message),
		zap.Bool("valid", ok))
	return nil
}
