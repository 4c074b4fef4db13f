package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/polkiloo/mailmart/internal/pkg/auth"
)

const hashBotKeyCommand = "hash-bot-key"

// hashBotKey prints the BOT_KEY_HASH value for a key passed as the only
// argument or, without arguments, on the first line of in.
func hashBotKey(args []string, in io.Reader, out, errOut io.Writer, hasher auth.KeyHasher) int {
	var key string
	switch len(args) {
	case 0:
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(errOut, "read bot key: %v\n", err)
			return 1
		}
		key = strings.TrimSpace(line)
	case 1:
		key = strings.TrimSpace(args[0])
	default:
		fmt.Fprintf(errOut, "usage: mailmart %s [key]\n", hashBotKeyCommand)
		return 2
	}
	if key == "" {
		fmt.Fprintln(errOut, "bot key must not be empty")
		return 2
	}

	hash, err := hasher.Hash(key)
	if err != nil {
		fmt.Fprintf(errOut, "hash bot key: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, hash)
	return 0
}
