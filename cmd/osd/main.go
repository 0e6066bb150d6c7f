// Package main is the entry point for osd, a transient on-screen display
// that shows a value gauge, a caption and an icon for about a second.
package main

func main() {
	Execute()
}
