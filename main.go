// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/ethantkoenig/nx/cmd/nx"

func main() {
	cmd.Execute()
}
