package main

import "github.com/mercurytc75/analisis-ventas/internal/cli"

func main() {
	cli.Execute()
}
