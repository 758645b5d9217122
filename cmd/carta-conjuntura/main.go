// Command carta-conjuntura e-mails the IPEA Carta de Conjuntura entry
// published today.
package main

import "github.com/pfrederiksen/carta-conjuntura/internal/cli"

func main() {
	cli.Execute()
}
