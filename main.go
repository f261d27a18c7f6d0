// main.go
package main

import "travel-booking/cmd"

func main() {
	cmd.Execute()
}
