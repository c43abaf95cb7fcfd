package main

import (
	"flag"
	"fmt"
	"net"

	"github.com/Brownie44l1/simple-server/internal/config"
	"github.com/Brownie44l1/simple-server/internal/request"
)

// tcplistener prints the request line of each connection and how it would
// be judged, without ever answering.
func main() {
	addr := flag.String("addr", ":42069", "listen address")
	root := flag.String("root", config.DefaultStaticRoot, "static root for the existence check")
	flag.Parse()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Println("Listen error:", err)
		return
	}
	defer listener.Close()
	fmt.Printf("Listening on %s...\n", *addr)

	checker := request.NewDirChecker(*root)
	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}

		handleConnection(conn, checker)
	}
}

func handleConnection(conn net.Conn, checker request.ResourceChecker) {
	defer conn.Close()

	line, err := request.ReadLine(conn, request.DefaultReadSize)
	if err != nil {
		fmt.Println("Read error:", err)
		return
	}
	fmt.Printf("Request Line: %q\n", line)

	req, err := request.ParseRequestLine(line, checker)
	if err != nil {
		fmt.Println("Rejected:", err)
		return
	}
	fmt.Printf("Method: %s\n", req.Method)
	fmt.Printf("URI: %s\n", req.URI)
	fmt.Printf("Version: %s\n", req.HTTPVersion)
}
