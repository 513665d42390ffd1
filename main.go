package main

import "github.com/lslops/checklist-management/cmd"

func main() {
	cmd.Execute()
}
