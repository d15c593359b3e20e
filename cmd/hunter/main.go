package main

import "liferpg/cmd/hunter/root"

func main() {
	root.Execute()
}
