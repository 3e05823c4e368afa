// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/saaristo/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
