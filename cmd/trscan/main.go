// cmd/trscan/main.go
package main

import (
	"trscan/internal/app"
	"trscan/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
