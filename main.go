package main

import "github.com/Snape93/nutrition-sub006/cmd/nutri"

func main() {
	nutri.Execute()
}
