package main

import "github.com/sivaprasad1108/event-sync-api/cmd/server/cmd"

func main() {
	cmd.Execute()
}
