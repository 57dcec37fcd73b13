// cmd/covmerge/main.go
// Entry point for the covmerge CLI.
package main

func main() {
	Execute()
}
