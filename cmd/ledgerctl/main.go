// Command ledgerctl is the developer CLI: seeds demo data and mints access tokens.
package main

func main() {
	Execute()
}
