// Command unionfind answers connectivity questions about graphs stored as
// TOML edge lists.
package main

import "github.com/papapumpkin/unionfind/cmd"

func main() {
	cmd.Execute()
}
