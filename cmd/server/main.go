package main

func main() {
	s := NewServer()
	s.Run()
}
