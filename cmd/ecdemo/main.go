// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

// Command ecdemo runs an elliptic curve Diffie-Hellman exchange or an ECDSA
// sign and verify round between two freshly generated parties.
package main

import "os"

func main() {
	// cobra already printed the error
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
