package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/yanun0323/errors"

	"orderflow/internal/codec"
	"orderflow/internal/recorder"
	"orderflow/internal/schema"
)

func main() {
	input := flag.String("input", "", "Path to the .bin order file")
	raw := flag.Bool("raw", false, "Treat records as unstuffed payloads")
	limit := flag.Int("limit", 0, "Max records to print (0=all)")
	flag.Parse()

	if *input == "" {
		log.Fatalf("input is required")
	}
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open input failed: %v", err)
	}
	defer f.Close()

	reader := recorder.NewReader(f)
	for *limit == 0 || reader.Count() < *limit {
		word, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Fatalf("read record %d failed: %v", reader.Count(), err)
		}

		var order schema.Order
		if *raw {
			order = codec.Unpack(word)
		} else {
			order = codec.DecodeOrder(word)
		}
		fmt.Printf("StockID: %d OrderType: %s OrderQty: %d OrderValue: %d\n",
			order.StockID, order.Side, order.Qty, order.Value)
	}
}
