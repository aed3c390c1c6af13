/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package main

import "dynamic-rounding/cmd"

func main() {
	cmd.Execute()
}
