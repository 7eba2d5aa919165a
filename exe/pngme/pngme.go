package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/akamensky/argparse"

	"github.com/rdxdkr/my-PNGme/png"
)

func main() {
	parser := argparse.NewParser("pngme", "a tool for hiding text messages in png chunks")

	encodeCmd := parser.NewCommand("encode", "embeds a message into a png file")
	encodeFile := encodeCmd.String("f", "file",
		&argparse.Options{Required: true, Help: "png file to read"})
	encodeType := encodeCmd.String("t", "type",
		&argparse.Options{Required: true, Help: "chunk type to store the message under (4 ascii letters)"})
	encodeMessage := encodeCmd.String("m", "message",
		&argparse.Options{Required: true, Help: "message to embed"})
	encodeOutput := encodeCmd.String("o", "output",
		&argparse.Options{Help: "output filename (defaults to rewriting the input file)"})

	decodeCmd := parser.NewCommand("decode", "prints a message stored in a png file")
	decodeFile := decodeCmd.String("f", "file",
		&argparse.Options{Required: true, Help: "png file to read"})
	decodeType := decodeCmd.String("t", "type",
		&argparse.Options{Required: true, Help: "chunk type holding the message"})

	removeCmd := parser.NewCommand("remove", "removes a chunk from a png file")
	removeFile := removeCmd.String("f", "file",
		&argparse.Options{Required: true, Help: "png file to modify"})
	removeType := removeCmd.String("t", "type",
		&argparse.Options{Required: true, Help: "chunk type to remove"})

	printCmd := parser.NewCommand("print", "lists all chunks of a png file")
	printFile := printCmd.String("f", "file",
		&argparse.Options{Required: true, Help: "png file to read"})

	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	switch {
	case encodeCmd.Happened():
		runEncode(*encodeFile, *encodeType, *encodeMessage, *encodeOutput)
	case decodeCmd.Happened():
		runDecode(*decodeFile, *decodeType)
	case removeCmd.Happened():
		runRemove(*removeFile, *removeType)
	case printCmd.Happened():
		runPrint(*printFile)
	}
}

func readPngFile(fileName string) *png.File {
	content, err := ioutil.ReadFile(fileName)
	if err != nil {
		log.Fatalf("error reading file %s: %s", fileName, err)
	}

	file, err := png.Decode(content)
	if err != nil {
		log.Fatalf("error decoding %s: %s", fileName, err)
	}
	return file
}

func writePngFile(fileName string, file *png.File) {
	err := ioutil.WriteFile(fileName, file.Encode(), 0644)
	if err != nil {
		log.Fatalf("error writing file %s: %s", fileName, err)
	}
}
