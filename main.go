package main

import "pet-market-backend/cmd"

func main() {
	cmd.Run()
}
