package cli

import "fmt"

const bannerDazzle = `
 ____    _    __________  _     _____
|  _ \  / \  |__  /__  / | |   | ____|
| | | |/ _ \   / /  / /  | |   |  _|
| |_| / ___ \ / /_ / /_  | |___| |___
|____/_/   \_\____/____| |_____|_____|
`

func printBanner() {
	fmt.Print(bannerDazzle)
}
