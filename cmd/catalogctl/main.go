// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command catalogctl inspects and edits the product catalog from a terminal.
package main

import "catalogpress/cmd/catalogctl/commands"

func main() {
	commands.Execute()
}
