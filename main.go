// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/BendyLand/MyJVM/cmd/myjvm"

func main() {
	cmd.Execute()
}
