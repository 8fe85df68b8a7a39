package main

import "github.com/mankybansal/gopro-library-downloader-selenium/cmd"

func main() {
	cmd.Execute()
}
