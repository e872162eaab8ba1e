// Command hash-generator prints bcrypt hashes for admin passwords, for use as
// ANALOG_AUTH_ADMIN_PASSWORD_HASH. Passwords are read from the arguments or,
// when none are given, one per line from stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	passwords := flag.Args()
	if len(passwords) == 0 {
		var err error
		passwords, err = readLines(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read passwords: %v\n", err)
			os.Exit(1)
		}
	}

	if err := writeHashes(os.Stdout, passwords, *cost); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// writeHashes prints one hash per password. bcrypt rejects passwords longer
// than 72 bytes.
func writeHashes(w io.Writer, passwords []string, cost int) error {
	for _, password := range passwords {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return fmt.Errorf("hash password of length %d: %w", len(password), err)
		}
		if _, err := fmt.Fprintln(w, string(hash)); err != nil {
			return err
		}
	}
	return nil
}
