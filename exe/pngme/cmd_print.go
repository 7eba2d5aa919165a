package main

import "fmt"

func runPrint(fileName string) {
	file := readPngFile(fileName)
	fmt.Print(file)
}
