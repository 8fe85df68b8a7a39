package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// prompt asks the operator for a value. With a non-empty defaultVal, Enter
// accepts the default.
func prompt(label string, defaultVal string) string {
	msg := label
	if defaultVal != "" {
		msg = fmt.Sprintf("%s [%s]", label, defaultVal)
	}
	fmt.Printf("%s: ", msg)

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}
