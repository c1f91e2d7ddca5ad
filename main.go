package main

import (
	"fmt"
	"os"

	"fvieira/frota-csv/cmd/expenses"
	"fvieira/frota-csv/cmd/fuelfeedcmd"
	"fvieira/frota-csv/cmd/importcmd"
	"fvieira/frota-csv/cmd/machines"
	"fvieira/frota-csv/cmd/materials"
	"fvieira/frota-csv/cmd/report"
	"fvieira/frota-csv/cmd/root"
	"fvieira/frota-csv/cmd/watch"
)

func init() {
	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(machines.Cmd)
	root.Cmd.AddCommand(materials.Cmd)
	root.Cmd.AddCommand(expenses.Cmd)
	root.Cmd.AddCommand(fuelfeedcmd.Cmd)
	root.Cmd.AddCommand(watch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
