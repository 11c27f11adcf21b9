package main

import "github.com/clusterside/sparklaunch/cmd"

func main() {
	cmd.Execute()
}
