package main

import (
	"fmt"
	"log"
	"math/big"
	"strings"

	scalelite "github.com/scalelite/scalelite"
	"github.com/scalelite/scalelite/schema"
	"github.com/scalelite/scalelite/wire"
)

func main() {
	s := scalelite.New()

	// A small chain-style schema: a header referencing a named hash type and
	// a variant describing what a digest item can be.
	if err := s.RegisterType("Hash", schema.ArrayOf(8, schema.U8())); err != nil {
		log.Fatalf("Failed to register Hash: %v", err)
	}
	if err := s.RegisterType("DigestItem", schema.MustVariantOf(
		schema.Bytes(),       // 0: opaque payload
		schema.U64(),         // 1: consensus slot
		schema.Named("Hash"), // 2: referenced hash
	)); err != nil {
		log.Fatalf("Failed to register DigestItem: %v", err)
	}
	if err := s.RegisterType("Header", schema.StructOf(
		schema.F("parent", schema.Named("Hash")),
		schema.F("number", schema.Compact()),
		schema.F("finalized", schema.Bool()),
		schema.F("digest", schema.VectorOf(schema.Named("DigestItem"))),
	)); err != nil {
		log.Fatalf("Failed to register Header: %v", err)
	}

	fmt.Println("Scalelite Sample App - SCALE codec over a registered schema")
	fmt.Println(strings.Repeat("=", 60))

	header := map[string]interface{}{
		"parent": []interface{}{
			uint8(0xDE), uint8(0xAD), uint8(0xBE), uint8(0xEF),
			uint8(0xCA), uint8(0xFE), uint8(0xBA), uint8(0xBE),
		},
		"number":    big.NewInt(4_200_000),
		"finalized": true,
		"digest": []interface{}{
			wire.Variant{Index: 1, Value: uint64(12345)},
			wire.Variant{Index: 0, Value: []byte{0x01, 0x02, 0x03}},
		},
	}

	demonstrateSchemaAPI(s, header)

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	demonstrateReflectionAPI()
}

func demonstrateSchemaAPI(s *scalelite.Scalelite, header map[string]interface{}) {
	encoded, err := s.Marshal(header, "Header")
	if err != nil {
		log.Fatalf("Failed to marshal header: %v", err)
	}
	fmt.Printf("Encoded header (%d bytes): %x\n", len(encoded), encoded)

	decoded, err := s.Unmarshal(encoded, "Header")
	if err != nil {
		log.Fatalf("Failed to unmarshal header: %v", err)
	}
	fields := decoded.(map[string]interface{})
	fmt.Printf("Decoded number:    %v\n", fields["number"])
	fmt.Printf("Decoded finalized: %v\n", fields["finalized"])
	fmt.Printf("Decoded digest:    %v\n", fields["digest"])

	// Truncated input surfaces a typed failure, not a partial value.
	_, err = s.Unmarshal(encoded[:len(encoded)/2], "Header")
	fmt.Printf("Truncated decode:  %v (kind=%v)\n", err, wire.Kind(err))
}

func demonstrateReflectionAPI() {
	type transfer struct {
		To     [8]byte
		Amount uint64 `scale:"compact"`
		Memo   *string
	}

	memo := "rent"
	t := transfer{
		To:     [8]byte{1, 2, 3, 4, 5, 6, 7, 8},
		Amount: 1_000_000,
		Memo:   &memo,
	}

	encoded, err := scalelite.Encode(t)
	if err != nil {
		log.Fatalf("Failed to encode transfer: %v", err)
	}
	fmt.Printf("Encoded transfer (%d bytes): %x\n", len(encoded), encoded)

	var decoded transfer
	if err := scalelite.DecodeAll(encoded, &decoded); err != nil {
		log.Fatalf("Failed to decode transfer: %v", err)
	}
	fmt.Printf("Decoded amount: %d, memo: %q\n", decoded.Amount, *decoded.Memo)
}
