package main

import (
	"fmt"
	"log"

	"github.com/rdxdkr/my-PNGme/png"
)

func runEncode(fileName string, chunkTypeName string, message string, outputName string) {
	chunkType, err := png.ChunkTypeFromString(chunkTypeName)
	if err != nil {
		log.Fatalf("invalid chunk type %q: %s", chunkTypeName, err)
	}

	file := readPngFile(fileName)
	file.AppendChunk(png.NewChunk(chunkType, []byte(message)))

	if outputName == "" {
		outputName = fileName
	}
	writePngFile(outputName, file)

	fmt.Printf("Embedded a %d-byte message into chunk %s of %s\n",
		len(message), chunkTypeName, outputName)
}
