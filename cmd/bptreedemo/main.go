// Command bptreedemo is a small, scriptable exercise of the bptree
// package: it inserts a batch of string keys, looks one up, deletes
// one, and prints the resulting ordered walk. It is not the randomized
// workload driver the package's tests use internally.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/kvbush/bplustree/bptree"
)

func main() {
	order := flag.Int("order", 4, "B+ tree order (fan-out bound, >= 3)")
	seed := flag.String("keys", "10,20,30,40,50,60,70", "comma-separated keys to insert, in order")
	lookup := flag.String("get", "40", "key to look up after inserting")
	remove := flag.String("delete", "20", "key to delete after the lookup")
	flag.Parse()

	tree, err := bptree.New[string, string](*order)
	if err != nil {
		log.Fatalf("new tree: %v", err)
	}

	for _, k := range strings.Split(*seed, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		tree.Insert(k, "value:"+k)
	}

	if v, ok := tree.Get(*lookup); ok {
		fmt.Printf("get(%s) = %s\n", *lookup, v)
	} else {
		fmt.Printf("get(%s) = <absent>\n", *lookup)
	}

	if err := tree.Remove(*remove); err != nil {
		fmt.Printf("delete(%s): %v\n", *remove, err)
	} else {
		fmt.Printf("delete(%s): ok\n", *remove)
	}

	fmt.Print("walk:")
	for k, v := range tree.All() {
		fmt.Printf(" %s=%s", k, v)
	}
	fmt.Println()
}
