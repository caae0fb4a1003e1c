package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/S0me0neR0man/headstash/internal/head"
)

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer) error {
	h, err := head.New(4 * 1024)
	if err != nil {
		return err
	}
	defer h.Release()

	if err = h.Push("Content-Length", "123"); err != nil {
		return err
	}
	if err = h.Push("Content-Type", "application/json"); err != nil {
		return err
	}

	c := head.NewCursor(h)
	for c.Next() {
		fmt.Fprintf(w, "'%s': '%s'.\n", c.Field(), c.Value())
	}

	fmt.Fprintf(w, "size: '%s'.\n", h.Find("Content-Length"))
	fmt.Fprintf(w, "type: '%s'.\n", h.Find("Content-Type"))
	fmt.Fprintf(w, "auth: '%s'.\n", h.Find("Authorization"))
	return nil
}
