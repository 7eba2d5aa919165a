package main

import (
	"fmt"
	"log"
)

func runRemove(fileName string, chunkTypeName string) {
	file := readPngFile(fileName)

	removed, err := file.RemoveChunk(chunkTypeName)
	if err != nil {
		log.Fatalf("error removing chunk %s from %s: %s", chunkTypeName, fileName, err)
	}

	writePngFile(fileName, file)
	fmt.Printf("Removed: %s\n", removed)
}
