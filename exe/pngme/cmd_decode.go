package main

import (
	"fmt"
	"log"
)

func runDecode(fileName string, chunkTypeName string) {
	file := readPngFile(fileName)

	chunk := file.ChunkByType(chunkTypeName)
	if chunk == nil {
		log.Fatalf("no chunk of type %s found in %s", chunkTypeName, fileName)
	}

	message, err := chunk.DataString()
	if err != nil {
		log.Fatalf("chunk %s does not hold a text message: %s", chunkTypeName, err)
	}

	fmt.Printf("Decoded: %s\n", message)
}
