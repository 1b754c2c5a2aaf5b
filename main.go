package main

import "drive-uploader/cmd"

func main() {
	cmd.Execute()
}
