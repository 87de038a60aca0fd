// Package main provides the conversion-rate benchmark report CLI.
//
// Usage:
//
//	cvr-report metrics --traffic 10000 --conversions 250 --type demos
//	cvr-report export --traffic 10000 --conversions 250 --format pdf --out report.pdf
//
// See --help for all available options.
package main

func main() {
	Execute()
}
