// Command memlens is an interactive terminal viewer for the memory of a
// running process, laid out as a tree of typed fields.
package main

func main() {
	execute()
}
